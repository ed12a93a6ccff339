package bot

import (
	"fmt"
	"strings"

	"raidbot/internal/config"
	"raidbot/internal/registry"

	"github.com/bwmarrin/discordgo"
)

// Use "raid red" for the bot
const color int = 0xED4245

func IgnoringPrivateMessages() []Response {
	return []Response{ResponseString{"For the time being, I am ignoring private messages"}}
}

func InputNotValid(errorMessage string) []Response {

	return []Response{ResponseString{fmt.Sprintf("Input not valid: \n> %s", errorMessage)}}
}

func HelpMessage(prefix string) []Response {

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: color}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s schedule <time> <title>`", prefix),
		Value:  "Schedule a new raid. You join your own raid automatically",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s join <raid_id>`", prefix),
		Value:  "Sign up for a raid",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s leave <raid_id>`", prefix),
		Value:  "Withdraw from a raid",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s cancel <raid_id>`", prefix),
		Value:  "Cancel a raid. Only the creator or a server admin can do this",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s list`", prefix),
		Value:  "Print every raid scheduled so far",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s roster`", prefix),
		Value:  "Display the configured raid roster with automatic reactions",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("`%s help`", prefix),
		Value:  "Print the usage of the different commands",
		Inline: false,
	})
	return []Response{ResponseEmbed{MessageEmbed: embed}}
}

func RaidScheduled(raid registry.Raid) []Response {

	embed := discordgo.MessageEmbed{Title: fmt.Sprintf("⚔️ Raid %d: %s", raid.Id, raid.Title), Color: color}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Scheduled at",
		Value:  raid.ScheduledAt,
		Inline: true,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Created by",
		Value:  mention(raid.CreatorId),
		Inline: true,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Signed up",
		Value:  participantList(raid.Participants),
		Inline: false,
	})
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Join with `!raid join %d`", raid.Id)}
	return []Response{ResponseEmbed{MessageEmbed: embed}}
}

func RaidJoined(raid registry.Raid, userid string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s signed up for raid `%d` (%s), %d participant(s) now", mention(userid), raid.Id, raid.Title, len(raid.Participants))}}
}

func RaidLeft(raid registry.Raid, userid string) []Response {
	return []Response{ResponseString{fmt.Sprintf("%s withdrew from raid `%d` (%s)", mention(userid), raid.Id, raid.Title)}}
}

func RaidCancelled(raid registry.Raid) []Response {
	return []Response{ResponseString{fmt.Sprintf("Raid `%d` (%s) has been cancelled", raid.Id, raid.Title)}}
}

func RaidNotFound(id registry.RaidId) []Response {
	return []Response{ResponseString{fmt.Sprintf("There is no raid with id `%d`", id)}}
}

func RaidClosed(id registry.RaidId) []Response {
	return []Response{ResponseString{fmt.Sprintf("Raid `%d` is cancelled and cannot be changed anymore", id)}}
}

func CancelForbidden(id registry.RaidId) []Response {
	return []Response{ResponseString{fmt.Sprintf("Only the creator of raid `%d` or a server admin can cancel it", id)}}
}

func RaidList(raids []registry.Raid) []Response {

	if len(raids) == 0 {
		return []Response{ResponseString{"No raids scheduled yet. Schedule one with `!raid schedule <time> <title>`"}}
	}

	embed := discordgo.MessageEmbed{Title: "Scheduled raids", Color: color}
	for _, raid := range raids {
		name := fmt.Sprintf("**%d** — %s (%s)", raid.Id, raid.Title, raid.Status)
		value := fmt.Sprintf("At %s, created by %s, %d signed up", raid.ScheduledAt, mention(raid.CreatorId), len(raid.Participants))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value, Inline: false})
	}
	return []Response{ResponseEmbed{MessageEmbed: embed}}
}

// The roster message is the one that gets the automatic reactions
func RosterMessage(roster []config.Member) []Response {

	embed := discordgo.MessageEmbed{
		Title:       "🗡️ Raid Participants",
		Description: "Ready for battle!",
		Color:       color,
	}
	if len(roster) == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "No Participants",
			Value:  "No raid participants configured. Please check the roster in the config file",
			Inline: false,
		})
	} else {
		value := ""
		for index, member := range roster {
			value += fmt.Sprintf("**%d.** %s - *%s*\n", index+1, member.Name, member.Role)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Participants",
			Value:  value,
			Inline: false,
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total participants: %d", len(roster))}
	return []Response{ResponseEmbed{MessageEmbed: embed, react: true}}
}

func mention(userid string) string {
	return fmt.Sprintf("<@%s>", userid)
}

func participantList(participants []string) string {
	if len(participants) == 0 {
		return "Nobody yet"
	}
	mentions := make([]string, len(participants))
	for i := range participants {
		mentions[i] = mention(participants[i])
	}
	return strings.Join(mentions, "\n")
}
