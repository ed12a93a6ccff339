package bot

import (
	"fmt"
	"strconv"
	"strings"

	"raidbot/internal/registry"

	"github.com/rs/zerolog/log"
)

const (
	COMMAND_SCHEDULE = iota
	COMMAND_JOIN     = iota
	COMMAND_LEAVE    = iota
	COMMAND_CANCEL   = iota
	COMMAND_LIST     = iota
	COMMAND_ROSTER   = iota
	COMMAND_HELP     = iota
)

const (
	PARSEID_OK                     = iota
	PARSEID_NO_BOT_PREFIX          = iota
	PARSEID_NO_COMMAND             = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_NO_INPUT               = iota
	PARSEID_NOT_A_RAID_ID          = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:             "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_NO_INPUT:               "Command `%s` requires an argument",
	PARSEID_NOT_A_RAID_ID:          "Input `%s` is not a raid id",
}

// Arguments of the schedule command: the raid time is an opaque
// display string, the rest of the words form the title
type ScheduleArgs struct {
	When  string
	Title string
}

type ParseResult struct {
	command      int
	parseid      int
	errorMessage string
	arguments    interface{}
}

func Parse(prefix string, message string) ParseResult {

	noInput := func(command int, commandString string) ParseResult {
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	// The message has to start with the bot prefix
	if !strings.HasPrefix(message, prefix) {
		log.Debug().Msg("Reject message not intended for the bot")
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}

	// Get the command if valid
	words := strings.Fields(strings.TrimSpace(message[len(prefix):]))
	if len(words) == 0 {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	commandString := words[0]
	words = words[1:]

	// Match the command

	switch commandString {
	case "schedule":
		// !raid schedule <time> <title>
		command := COMMAND_SCHEDULE
		if len(words) < 2 {
			return noInput(command, commandString)
		}
		args := ScheduleArgs{When: words[0], Title: strings.Join(words[1:], " ")}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: args}
	case "join":
		// !raid join <raid_id>
		command := COMMAND_JOIN
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseRaidId(command, words[0])
	case "leave":
		// !raid leave <raid_id>
		command := COMMAND_LEAVE
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseRaidId(command, words[0])
	case "cancel":
		// !raid cancel <raid_id>
		command := COMMAND_CANCEL
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseRaidId(command, words[0])
	case "list":
		// !raid list
		return ParseResult{command: COMMAND_LIST, parseid: PARSEID_OK}
	case "roster":
		// !raid roster
		return ParseResult{command: COMMAND_ROSTER, parseid: PARSEID_OK}
	case "help":
		// !raid help
		return ParseResult{command: COMMAND_HELP, parseid: PARSEID_OK}
	default:
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}
}

func parseRaidId(command int, word string) ParseResult {

	value, err := strconv.ParseUint(word, 10, 64)
	if err != nil {
		parseid := PARSEID_NOT_A_RAID_ID
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], word)}
	}
	return ParseResult{command: command, parseid: PARSEID_OK, arguments: registry.RaidId(value)}
}
