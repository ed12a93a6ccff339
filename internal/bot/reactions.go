package bot

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"raidbot/internal/common"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// ReactionAdder places the configured emojis on a message, pacing
// the requests so Discord does not rate limit us. The registry knows
// nothing about emojis or reactions, this is pure platform glue
type ReactionAdder struct {
	emojis  []string
	limiter *common.RateLimiter
}

func NewReactionAdder(emojis []string, restrictions []common.Restriction, cooldown time.Duration) ReactionAdder {
	return ReactionAdder{emojis: emojis, limiter: common.NewRateLimiter(restrictions, cooldown)}
}

// AddAll places every configured emoji on the message, in roster order.
// Failures are logged and skipped, a missing reaction is not worth
// interrupting the command for
func (ra *ReactionAdder) AddAll(discord *discordgo.Session, channelid string, messageid string) {

	log.Debug().Msg(fmt.Sprintf("Adding %d reactions to message %s", len(ra.emojis), messageid))
	added := 0
	for _, emoji := range ra.emojis {
		// Reactions are vital requests: wait for the limiter
		// rather than dropping emojis from the set
		if !ra.limiter.Allowed(true) {
			log.Warn().Msg(fmt.Sprintf("Rate limiter did not allow reaction %s", emoji))
			continue
		}
		if err := discord.MessageReactionAdd(channelid, messageid, apiEmoji(emoji)); err != nil {
			log.Warn().Err(err).Msg(fmt.Sprintf("Could not add reaction %s to message %s", emoji, messageid))
			if isRateLimit(err) {
				ra.limiter.ReceivedRateLimit()
			}
			continue
		}
		added++
	}
	log.Debug().Msg(fmt.Sprintf("Added %d reactions to message %s", added, messageid))
}

func isRateLimit(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusTooManyRequests
}

// Discord wants unicode emojis without the variation selector
// in the reaction endpoint
func apiEmoji(emoji string) string {
	return strings.TrimSuffix(emoji, "️")
}
