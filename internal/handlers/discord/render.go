package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/duelhall/internal/models"
	"github.com/KirkDiggler/duelhall/internal/services/duel"
	"github.com/bwmarrin/discordgo"
)

const (
	colorActive   = 0x00ff00
	colorFinished = 0xf1c40f
	colorDraw     = 0x95a5a6
	colorFailure  = 0xff0000

	buttonPrefix = "duel"
)

// actionButton is the payload of an action button custom ID:
// duel:<action>:<duel id>:<actor character id>
type actionButton struct {
	Action           models.ActionKind
	DuelID           string
	ActorCharacterID string
}

func (b actionButton) customID() string {
	return strings.Join([]string{buttonPrefix, string(b.Action), b.DuelID, b.ActorCharacterID}, ":")
}

func parseActionButton(customID string) (actionButton, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != buttonPrefix {
		return actionButton{}, false
	}
	b := actionButton{
		Action:           models.ActionKind(parts[1]),
		DuelID:           parts[2],
		ActorCharacterID: parts[3],
	}
	if !b.Action.Valid() || b.DuelID == "" || b.ActorCharacterID == "" {
		return actionButton{}, false
	}
	return b, true
}

var actionEmoji = map[models.ActionKind]string{
	models.ActionAttack: "⚔️",
	models.ActionCast:   "✨",
	models.ActionHeal:   "💚",
}

// actionRow offers the three actions to the given actor
func actionRow(duelID, actorID string) discordgo.ActionsRow {
	var buttons []discordgo.MessageComponent
	for _, kind := range models.ActionKinds {
		style := discordgo.PrimaryButton
		if kind == models.ActionHeal {
			style = discordgo.SuccessButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    strings.ToUpper(string(kind[:1])) + string(kind[1:]),
			Style:    style,
			CustomID: actionButton{Action: kind, DuelID: duelID, ActorCharacterID: actorID}.customID(),
			Emoji:    &discordgo.ComponentEmoji{Name: actionEmoji[kind]},
		})
	}
	return discordgo.ActionsRow{Components: buttons}
}

func renderChallenge(out *duel.ChallengeOutput) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       "Duel started",
		Description: fmt.Sprintf("Duel `%s` is underway.", out.DuelID),
		Color:       colorActive,
	}

	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if d := out.Duel; d != nil {
		embed.Fields = combatantFields(d)
		data.Components = []discordgo.MessageComponent{actionRow(d.ID, d.Challenger.CharacterID)}
	}
	return data
}

// renderOutcome shows the result of an action. Active outcomes keep the
// action buttons for the same actor.
func renderOutcome(out *duel.ApplyActionOutput, actorID string, fl flavor) *discordgo.InteractionResponseData {
	if out.Status == models.DuelStatusFinished {
		title := "Duel finished"
		if fl.Title != "" {
			title = fl.Title
		}
		embed := &discordgo.MessageEmbed{
			Title:       title,
			Description: withLine(fmt.Sprintf("`%s` wins against `%s`.", out.WinnerCharacterID, out.LoserCharacterID), fl.Line),
			Color:       colorFinished,
			Fields:      []*discordgo.MessageEmbedField{lootField(out)},
		}
		// An empty component list clears the buttons of an updated message
		return &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		}
	}

	verb := "dealt"
	if out.Action == models.ActionHeal {
		verb = "healed"
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", actionEmoji[out.Action], out.Action),
		Description: withLine(fmt.Sprintf("`%s` %s %d.", actorID, verb, out.Amount), fl.Line),
		Color:       colorActive,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Challenger HP", Value: fmt.Sprintf("%d", out.ChallengerHP), Inline: true},
			{Name: "Opponent HP", Value: fmt.Sprintf("%d", out.OpponentHP), Inline: true},
		},
	}
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{actionRow(out.DuelID, actorID)},
	}
}

func withLine(description, line string) string {
	if line == "" {
		return description
	}
	return description + "\n" + line
}

func lootField(out *duel.ApplyActionOutput) *discordgo.MessageEmbedField {
	field := &discordgo.MessageEmbedField{Name: "Loot"}
	switch {
	case !out.LootConfirmed:
		field.Value = "Transfer pending: " + out.LootError
	case out.Loot == nil || out.Loot.Transferred == nil:
		field.Value = "Nothing to take"
	case out.LootDisplayName != "":
		field.Value = out.LootDisplayName
	default:
		field.Value = out.Loot.Transferred.ItemInstanceID
	}
	return field
}

func renderStatus(out *duel.GetDuelOutput) *discordgo.InteractionResponseData {
	d := out.Duel
	color := colorActive
	switch d.Status {
	case models.DuelStatusFinished:
		color = colorFinished
	case models.DuelStatusDraw:
		color = colorDraw
	}

	fields := combatantFields(d)
	if d.WinnerCharacterID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Winner", Value: d.WinnerCharacterID})
	}

	var log strings.Builder
	for _, a := range out.Actions {
		fmt.Fprintf(&log, "%s `%s` %s %d\n", a.CreatedAt.Format("15:04:05"), a.ActorCharacterID, a.Action, a.Amount)
	}
	if log.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Actions", Value: log.String()})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:  fmt.Sprintf("Duel %s", d.ID),
			Color:  color,
			Fields: fields,
			Footer: &discordgo.MessageEmbedFooter{Text: string(d.Status)},
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func combatantFields(d *models.Duel) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{Name: "Challenger", Value: fmt.Sprintf("`%s`\nHP %d", d.Challenger.CharacterID, d.Challenger.HP), Inline: true},
		{Name: "Opponent", Value: fmt.Sprintf("`%s`\nHP %d", d.Opponent.CharacterID, d.Opponent.HP), Inline: true},
	}
}

// renderFailure shows a rejected request with its code. The flavor line goes
// in the footer.
func renderFailure(err error, fl flavor) *discordgo.MessageEmbed {
	e, ok := duel.AsError(err)
	if !ok {
		return &discordgo.MessageEmbed{Title: "Error", Description: "Something went wrong.", Color: colorFailure}
	}

	embed := &discordgo.MessageEmbed{
		Title:       string(e.Code),
		Description: e.Message,
		Color:       colorFailure,
	}
	if e.Code == duel.CodeTimeout {
		embed.Color = colorDraw
	}
	if fl.Line != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fl.Line}
	}
	return embed
}
