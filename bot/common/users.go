package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the user behind an interaction, whether it came
// from a guild channel or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID parses the interacting user's snowflake ID
func InteractionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := InteractionUser(i)
	if user == nil {
		return 0, fmt.Errorf("interaction has no user")
	}

	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user ID %s: %w", user.ID, err)
	}
	return id, nil
}
