package bot

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raidbot/internal/common"
	"raidbot/internal/config"
	"raidbot/internal/registry"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	token           string
	prefix          string
	registry        *registry.Registry
	roster          []config.Member
	reactions       ReactionAdder
	summaryExecutor common.TimedExecutor
	mainCycle       time.Duration
}

// NewBot wires the bot to an externally owned registry, so tests can
// hand it an isolated instance
func NewBot(cfg config.Config, reg *registry.Registry) Bot {

	var bot Bot

	bot.token = cfg.Token
	bot.prefix = cfg.Prefix
	bot.registry = reg
	bot.roster = cfg.Roster
	// Pacing for the automatic reactions
	restrictions := []common.Restriction{{Requests: cfg.ReactionRequests, Duration: cfg.ReactionWindow}}
	bot.reactions = NewReactionAdder(cfg.Emojis(), restrictions, cfg.ReactionCooldown)
	// Periodic registry summary in the log
	bot.summaryExecutor = common.NewTimedExecutor(cfg.SummaryTimeout, bot.logSummary)
	// Main loop cycle
	bot.mainCycle = cfg.MainCycle

	return bot
}

func (bot *Bot) Run() error {
	// Create session
	discord, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}

	// The bot reads message content, so it needs the intent for it
	discord.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	// Event handlers
	discord.AddHandler(bot.Ready)
	discord.AddHandler(bot.Receive)

	// Open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()

	// Keep the bot running until an os interruption arrives
	log.Info().Msg("Starting main loop")
	ticker := time.NewTicker(bot.mainCycle)
	defer ticker.Stop()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-ticker.C:
			bot.summaryExecutor.Execute()
		case <-c:
			log.Info().Msg("Shutdown requested")
			return nil
		}
	}
}

func (bot *Bot) Ready(discord *discordgo.Session, ready *discordgo.Ready) {

	log.Info().Msg(fmt.Sprintf("Logged in as %s, connected to %d guild(s)", ready.User.Username, len(ready.Guilds)))
	if err := discord.UpdateWatchStatus(0, fmt.Sprintf("for %s commands", bot.prefix)); err != nil {
		log.Warn().Err(err).Msg("Could not set presence")
	}
}

func (bot *Bot) Receive(discord *discordgo.Session, message *discordgo.MessageCreate) {

	// Reject my own messages
	if message.Author.ID == discord.State.User.ID {
		return
	}

	// Ignore messages from private channels
	if message.GuildID == "" {
		log.Debug().Msg("Ignoring private message")
		bot.sendResponses(discord, message.ChannelID, IgnoringPrivateMessages())
		return
	}

	// Parse the input provided and call the appropriate function
	parseResult := Parse(bot.prefix, message.Content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return
	case PARSEID_OK:
		log.Debug().Msg(fmt.Sprintf("Command understood: %s", message.Content))
		var responses []Response
		switch parseResult.command {
		case COMMAND_SCHEDULE:
			switch args := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of schedule arguments %T", args))
			case ScheduleArgs:
				responses = bot.schedule(args, message.Author.ID)
			}
		case COMMAND_JOIN:
			switch raidid := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of raid id %T", raidid))
			case registry.RaidId:
				responses = bot.join(raidid, message.Author.ID)
			}
		case COMMAND_LEAVE:
			switch raidid := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of raid id %T", raidid))
			case registry.RaidId:
				responses = bot.leave(raidid, message.Author.ID)
			}
		case COMMAND_CANCEL:
			switch raidid := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of raid id %T", raidid))
			case registry.RaidId:
				responses = bot.cancel(discord, raidid, message)
			}
		case COMMAND_LIST:
			responses = RaidList(bot.registry.List())
		case COMMAND_ROSTER:
			responses = RosterMessage(bot.roster)
		case COMMAND_HELP:
			responses = HelpMessage(bot.prefix)
		default:
			panic(fmt.Sprintf("Command %d is not one of the possible ones", parseResult.command))
		}
		bot.sendResponses(discord, message.ChannelID, responses)
	default:

		// The command is invalid input, so it contains an error message
		errorMessage := parseResult.errorMessage
		log.Debug().Msg(fmt.Sprintf("Wrong input: '%s'. Reason: %s", message.Content, errorMessage))
		bot.sendResponses(discord, message.ChannelID, InputNotValid(errorMessage))
	}
}

func (bot *Bot) sendResponses(discord *discordgo.Session, channelid string, responses []Response) {
	for _, response := range responses {
		message, err := response.Send(channelid, discord)
		if err != nil {
			log.Error().Err(err).Msg(fmt.Sprintf("Could not send response to channel %s", channelid))
			continue
		}
		if response.WantsReactions() && message != nil {
			bot.reactions.AddAll(discord, channelid, message.ID)
		}
	}
}

func (bot *Bot) schedule(args ScheduleArgs, userid string) []Response {

	raid := bot.registry.Create(args.Title, args.When, userid)
	log.Info().Msg(fmt.Sprintf("User %s scheduled raid %d (%s) at %s", userid, raid.Id, raid.Title, raid.ScheduledAt))
	return RaidScheduled(raid)
}

func (bot *Bot) join(raidid registry.RaidId, userid string) []Response {

	if responses, ok := bot.checkMutation(bot.registry.Join(raidid, userid), raidid); !ok {
		return responses
	}
	raid, err := bot.registry.Get(raidid)
	if err != nil {
		panic(fmt.Sprintf("raid %d vanished right after joining it", raidid))
	}
	log.Info().Msg(fmt.Sprintf("User %s joined raid %d", userid, raidid))
	return RaidJoined(raid, userid)
}

func (bot *Bot) leave(raidid registry.RaidId, userid string) []Response {

	if responses, ok := bot.checkMutation(bot.registry.Leave(raidid, userid), raidid); !ok {
		return responses
	}
	raid, err := bot.registry.Get(raidid)
	if err != nil {
		panic(fmt.Sprintf("raid %d vanished right after leaving it", raidid))
	}
	log.Info().Msg(fmt.Sprintf("User %s left raid %d", userid, raidid))
	return RaidLeft(raid, userid)
}

func (bot *Bot) cancel(discord *discordgo.Session, raidid registry.RaidId, message *discordgo.MessageCreate) []Response {

	userid := message.Author.ID
	admin := bot.isAdmin(discord, message)
	err := bot.registry.Cancel(raidid, userid, admin)
	if errors.Is(err, registry.ErrForbidden) {
		log.Info().Msg(fmt.Sprintf("User %s may not cancel raid %d", userid, raidid))
		return CancelForbidden(raidid)
	}
	if responses, ok := bot.checkMutation(err, raidid); !ok {
		return responses
	}
	raid, err := bot.registry.Get(raidid)
	if err != nil {
		panic(fmt.Sprintf("raid %d vanished right after cancelling it", raidid))
	}
	log.Info().Msg(fmt.Sprintf("User %s cancelled raid %d (admin: %t)", userid, raidid, admin))
	return RaidCancelled(raid)
}

// Translate the expected registry failures into responses.
// The second return value tells the caller whether the mutation
// went through
func (bot *Bot) checkMutation(err error, raidid registry.RaidId) ([]Response, bool) {
	switch {
	case err == nil:
		return nil, true
	case errors.Is(err, registry.ErrNotFound):
		return RaidNotFound(raidid), false
	case errors.Is(err, registry.ErrCancelled):
		return RaidClosed(raidid), false
	default:
		// The registry performs no I/O, nothing else can fail
		panic(fmt.Sprintf("unexpected registry error: %v", err))
	}
}

// A caller is an admin if Discord grants them the administrator
// permission in the channel the command came from
func (bot *Bot) isAdmin(discord *discordgo.Session, message *discordgo.MessageCreate) bool {

	permissions, err := discord.UserChannelPermissions(message.Author.ID, message.ChannelID)
	if err != nil {
		log.Warn().Err(err).Msg(fmt.Sprintf("Could not read permissions of user %s", message.Author.ID))
		return false
	}
	return permissions&discordgo.PermissionAdministrator != 0
}

// Periodic housekeeping: dump a summary of the registry to the log
func (bot *Bot) logSummary() {

	raids := bot.registry.List()
	open := 0
	for _, raid := range raids {
		if raid.Status == registry.StatusOpen {
			open++
		}
	}
	log.Info().Int("total", len(raids)).Int("open", open).Int("cancelled", len(raids)-open).Msg("Registry summary")
}
