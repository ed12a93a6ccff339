package bot

import (
	"github.com/bwmarrin/discordgo"
)

type ResponseString struct {
	string
}
type ResponseEmbed struct {
	discordgo.MessageEmbed
	react bool
}

// Response is anything the bot can send back to a channel.
// Send returns the message that was produced, so that the bot
// can decorate it with reactions afterwards
type Response interface {
	Send(channelid string, discord *discordgo.Session) (*discordgo.Message, error)
	WantsReactions() bool
}

func (response ResponseString) Send(channelid string, discord *discordgo.Session) (*discordgo.Message, error) {
	return discord.ChannelMessageSend(channelid, response.string)
}

func (response ResponseString) WantsReactions() bool {
	return false
}

func (response ResponseEmbed) Send(channelid string, discord *discordgo.Session) (*discordgo.Message, error) {
	return discord.ChannelMessageSendEmbed(channelid, &response.MessageEmbed)
}

func (response ResponseEmbed) WantsReactions() bool {
	return response.react
}
