package bot

import (
	"testing"

	"raidbot/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "!raid"

func TestParseRejectsForeignMessages(t *testing.T) {
	result := Parse(prefix, "hello everyone")
	assert.Equal(t, PARSEID_NO_BOT_PREFIX, result.parseid)
}

func TestParseNoCommand(t *testing.T) {
	result := Parse(prefix, "!raid")
	assert.Equal(t, PARSEID_NO_COMMAND, result.parseid)
	assert.NotEmpty(t, result.errorMessage)
}

func TestParseUnknownCommand(t *testing.T) {
	result := Parse(prefix, "!raid explode")
	assert.Equal(t, PARSEID_COMMAND_NOT_RECOGNISED, result.parseid)
	assert.Contains(t, result.errorMessage, "explode")
}

func TestParseSchedule(t *testing.T) {
	result := Parse(prefix, "!raid schedule 20:00 Molten Core")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_SCHEDULE, result.command)

	args, ok := result.arguments.(ScheduleArgs)
	require.True(t, ok)
	assert.Equal(t, "20:00", args.When)
	assert.Equal(t, "Molten Core", args.Title)
}

func TestParseScheduleNeedsTimeAndTitle(t *testing.T) {
	result := Parse(prefix, "!raid schedule 20:00")
	assert.Equal(t, PARSEID_NO_INPUT, result.parseid)
}

func TestParseJoin(t *testing.T) {
	result := Parse(prefix, "!raid join 3")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_JOIN, result.command)
	assert.Equal(t, registry.RaidId(3), result.arguments)
}

func TestParseLeave(t *testing.T) {
	result := Parse(prefix, "!raid leave 3")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_LEAVE, result.command)
}

func TestParseCancelNeedsAnId(t *testing.T) {
	result := Parse(prefix, "!raid cancel")
	assert.Equal(t, PARSEID_NO_INPUT, result.parseid)
}

func TestParseBadRaidId(t *testing.T) {
	result := Parse(prefix, "!raid join tonight")
	assert.Equal(t, PARSEID_NOT_A_RAID_ID, result.parseid)
	assert.Contains(t, result.errorMessage, "tonight")
}

func TestParseBareCommands(t *testing.T) {
	for message, command := range map[string]int{
		"!raid list":   COMMAND_LIST,
		"!raid roster": COMMAND_ROSTER,
		"!raid help":   COMMAND_HELP,
	} {
		result := Parse(prefix, message)
		require.Equal(t, PARSEID_OK, result.parseid, message)
		assert.Equal(t, command, result.command, message)
	}
}
