/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-roundrobin/bcc"
	"github.com/mikeb26/boylstonchessclub-roundrobin/render"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

type RrSubCommand string

const (
	RrAboutCmd  RrSubCommand = "about"
	RrHelpCmd   RrSubCommand = "help"
	RrCalCmd    RrSubCommand = "cal"
	RrTablesCmd RrSubCommand = "tables"
	RrEventCmd  RrSubCommand = "event"
)

// maxPlayers keeps a table inside a single discord message.
const maxPlayers = 16

var rrSubCmdHdlrs = map[RrSubCommand]CmdHandler{
	RrAboutCmd:  rrAboutCmdHandler,
	RrHelpCmd:   rrHelpCmdHandler,
	RrCalCmd:    rrCalCmdHandler,
	RrTablesCmd: rrTablesCmdHandler,
	RrEventCmd:  rrEventCmdHandler,
}

// newClient is replaced in tests to point at a local server.
var newClient = bcc.NewClient

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func rrCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(RrCmd),
		Description: "Round-robin pairing tables; try /rr help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RrHelpCmd),
				Description: "Show usage for rr",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RrAboutCmd),
				Description: "Show information about boylstonchessclub-roundrobin",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RrCalCmd),
				Description: "Show upcoming events on the calendar",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to retrieve (default is 14)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RrTablesCmd),
				Description: "Print round-robin tables for a numbered field",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "players",
						Description: fmt.Sprintf("Number of players (1-%d)", maxPlayers),
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "method",
						Description: "Pairing method (default is berger)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "berger", Value: "berger"},
							{Name: "circle", Value: "circle"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "search",
						Description: "Search for the fairest board arrangement (default is true)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "ideal",
						Description: "Use the known ideal arrangement (default is false)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RrEventCmd),
				Description: "Pair every section of an event as a round-robin",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					broadcastOption(),
				},
			},
		},
	}
}

func rrCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := rrHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := rrSubCmdHdlrs[RrSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions indexes the options of the invoked subcommand by name.
func subOptions(
	inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {

	ret := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return ret
	}
	for _, opt := range data.Options[0].Options {
		ret[opt.Name] = opt
	}

	return ret
}

func boolOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption,
	name string, def bool) bool {

	if opt, ok := opts[name]; ok {
		return opt.BoolValue()
	}
	return def
}

//go:embed about.txt
var aboutText string

func rrAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func rrHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

func rrCalCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter)
	days := int64(14) // default
	if opt, ok := opts["days"]; ok {
		days = opt.IntValue()
	}
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}

	now := time.Now()
	events, err := newClient(ctx).GetEvents(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("discordbot.cal: %v", resp.Data.Content)
		return resp
	}
	events = bcc.EventsBetween(events, now, now.AddDate(0, 0, int(days)))
	if len(events) == 0 {
		resp.Data.Content = fmt.Sprintf("No events found in the next %d days.", days)
		log.Printf("discordbot.cal: %v", resp.Data.Content)
		return resp
	}

	eventsByDate := make(map[string][]bcc.Event)
	for _, ev := range events {
		key := ev.Date.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}
	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Strings(datesList)
	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v (EventID:%v)\n", ev.Title, ev.EventID))
		}
	}
	sb.WriteString("\nRun /rr event <EventID> to pair a specific event\n")
	resp.Data.Content = truncateContent(sb.String())

	if boolOption(opts, "broadcast", false) {
		resp.Data.Flags = 0
	}

	return resp
}

func rrTablesCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter)
	opt, ok := opts["players"]
	if !ok {
		resp.Data.Content = "Please provide the number of players."
		log.Printf("discordbot.tables: %v", resp.Data.Content)
		return resp
	}
	players := opt.IntValue()
	if players < 1 || players > maxPlayers {
		resp.Data.Content = fmt.Sprintf("Number of players must be between 1 and %d.",
			maxPlayers)
		log.Printf("discordbot.tables: %v", resp.Data.Content)
		return resp
	}
	method := roundrobin.Berger
	if opt, ok := opts["method"]; ok {
		m, err := roundrobin.ParseMethod(opt.StringValue())
		if err != nil {
			resp.Data.Content = err.Error()
			log.Printf("discordbot.tables: %v", resp.Data.Content)
			return resp
		}
		method = m
	}

	competitors := roundrobin.NumberedCompetitors(int(players))
	field := roundrobin.Pad(competitors)
	ropts := render.Options{Width: len(fmt.Sprint(len(field))), Header: true}
	var sb strings.Builder
	switch {
	case boolOption(opts, "ideal", false):
		s, err := roundrobin.GenerateIdeal(competitors)
		if err != nil {
			resp.Data.Content = err.Error()
			log.Printf("discordbot.tables: %v", resp.Data.Content)
			return resp
		}
		sb.WriteString(render.Schedule(s, ropts))
		sb.WriteString(fmt.Sprintf("ideal score %d\n", roundrobin.IdealScore(len(field))))
	default:
		s, err := roundrobin.Generate(competitors, method)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error building tables: %v", err)
			log.Printf("discordbot.tables: %v", resp.Data.Content)
			return resp
		}
		if !boolOption(opts, "search", true) {
			j, err := roundrobin.Score(s, field)
			if err != nil {
				resp.Data.Content = fmt.Sprintf("Error scoring tables: %v", err)
				log.Printf("discordbot.tables: %v", resp.Data.Content)
				return resp
			}
			sb.WriteString(render.Schedule(s, ropts))
			sb.WriteString(fmt.Sprintf("score %d; ideal score %d\n", j.Total,
				roundrobin.IdealScore(len(field))))
			break
		}
		best, err := roundrobin.Search(s, field, roundrobin.SearchOptions{})
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error searching tables: %v", err)
			log.Printf("discordbot.tables: %v", resp.Data.Content)
			return resp
		}
		sb.WriteString(render.Schedule(best.Best.Schedule(), ropts))
		sb.WriteString(render.Summary(best))
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if boolOption(opts, "broadcast", false) {
		resp.Data.Flags = 0
	}

	return resp
}

func rrEventCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter)
	opt, ok := opts["eventid"]
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.event: %v", resp.Data.Content)
		return resp
	}
	eventID := opt.IntValue()

	detail, tables, err := newClient(ctx).GetEventTables(ctx, eventID,
		bcc.TableOptions{Method: roundrobin.Berger, Search: true})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", eventID, err)
		log.Printf("discordbot.event: %v", resp.Data.Content)
		return resp
	}

	ropts := render.Options{Width: 1}
	for _, t := range tables {
		ropts.Width = max(ropts.Width, render.NameWidth(t.Competitors))
	}
	var sb strings.Builder
	sb.WriteString(bcc.BuildEventOutput(&detail, "", true, true))
	sb.WriteString("\n")
	sb.WriteString(bcc.BuildTablesOutput(tables, ropts))

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if boolOption(opts, "broadcast", false) {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
