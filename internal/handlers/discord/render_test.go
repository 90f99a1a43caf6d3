package discord

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionButtonRoundTrip(t *testing.T) {
	b := actionButton{Action: models.ActionCast, DuelID: "duel-1", ActorCharacterID: "char-a"}

	parsed, ok := parseActionButton(b.customID())
	require.True(t, ok)
	assert.Equal(t, b, parsed)
}

func TestParseActionButtonRejectsForeignIDs(t *testing.T) {
	for _, id := range []string{
		"",
		"roll_dice",
		"duel:dance:duel-1:char-a",
		"duel:attack::char-a",
		"duel:attack:duel-1",
		"other:attack:duel-1:char-a",
	} {
		_, ok := parseActionButton(id)
		assert.False(t, ok, id)
	}
}

func TestRenderOutcomeFinishedClearsButtons(t *testing.T) {
	data := renderOutcome(&duel.ApplyActionOutput{
		Status:            models.DuelStatusFinished,
		WinnerCharacterID: "char-a",
		LoserCharacterID:  "char-b",
		LootConfirmed:     true,
		Loot:              &models.LootResult{Transferred: &models.LootTransfer{ItemInstanceID: "inst-1"}},
		LootDisplayName:   "Sword of Strength",
	}, "char-a", flavor{})

	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Duel finished", data.Embeds[0].Title)
	assert.Equal(t, "Sword of Strength", data.Embeds[0].Fields[0].Value)
	assert.NotNil(t, data.Components)
	assert.Empty(t, data.Components)
}

func TestRenderOutcomeUsesFlavor(t *testing.T) {
	data := renderOutcome(&duel.ApplyActionOutput{
		DuelID:       "duel-1",
		Status:       models.DuelStatusActive,
		Action:       models.ActionHeal,
		Amount:       4,
		ChallengerHP: 24,
		OpponentHP:   20,
	}, "char-a", flavor{Line: "A warm light surrounds char-a."})

	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "`char-a` healed 4.\nA warm light surrounds char-a.", data.Embeds[0].Description)
	require.Len(t, data.Components, 1)

	finished := renderOutcome(&duel.ApplyActionOutput{
		Status:            models.DuelStatusFinished,
		WinnerCharacterID: "char-a",
		LoserCharacterID:  "char-b",
		LootConfirmed:     true,
		Loot:              &models.LootResult{},
	}, "char-a", flavor{Title: "Victory!"})
	assert.Equal(t, "Victory!", finished.Embeds[0].Title)
	assert.Equal(t, "`char-a` wins against `char-b`.", finished.Embeds[0].Description)
}

func TestLootField(t *testing.T) {
	pending := lootField(&duel.ApplyActionOutput{LootError: "timeout"})
	assert.Equal(t, "Transfer pending: timeout", pending.Value)

	empty := lootField(&duel.ApplyActionOutput{LootConfirmed: true, Loot: &models.LootResult{}})
	assert.Equal(t, "Nothing to take", empty.Value)

	bare := lootField(&duel.ApplyActionOutput{
		LootConfirmed: true,
		Loot:          &models.LootResult{Transferred: &models.LootTransfer{ItemInstanceID: "inst-7"}},
	})
	assert.Equal(t, "inst-7", bare.Value)
}

func TestRenderFailure(t *testing.T) {
	embed := renderFailure(duel.ErrTimeout, flavor{})
	assert.Equal(t, "TIMEOUT", embed.Title)
	assert.Equal(t, colorDraw, embed.Color)
	assert.Nil(t, embed.Footer)

	embed = renderFailure(duel.ErrCooldown, flavor{Line: "Patience!"})
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Patience!", embed.Footer.Text)

	embed = renderFailure(errors.New("boom"), flavor{})
	assert.Equal(t, "Error", embed.Title)
	assert.Equal(t, colorFailure, embed.Color)
}

func TestCallerFromInteraction(t *testing.T) {
	admin := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "u1"},
			Permissions: discordgo.PermissionAdministrator,
		},
	}}
	assert.Equal(t, duel.Caller{UserID: "u1", Role: duel.RoleGameMaster}, callerFromInteraction(admin))

	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "u2"}, Permissions: discordgo.PermissionSendMessages},
	}}
	assert.Equal(t, duel.Caller{UserID: "u2"}, callerFromInteraction(member))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "u3"}}}
	assert.Equal(t, duel.Caller{UserID: "u3"}, callerFromInteraction(dm))
}
