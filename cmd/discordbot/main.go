/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
)

const (
	tokenEnv  = "RRTD_DISCORD_TOKEN"
	pubKeyEnv = "RRTD_DISCORD_PUBKEY"
	appIDEnv  = "RRTD_DISCORD_APPID"
	cmdIDEnv  = "RRTD_DISCORD_CMDID"
)

var botPubKey ed25519.PublicKey
var botAppId string
var rrCmdId string

var client *discordgo.Session

type TopLevelCommand string

const (
	RrCmd TopLevelCommand = "rr"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	RrCmd: rrCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if len(botPubKey) != ed25519.PublicKeySize ||
		!discordgo.VerifyInteraction(r, botPubKey) {

		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// loadConfig reads the bot's credentials from the environment.
func loadConfig() error {
	token := os.Getenv(tokenEnv)
	if token == "" {
		return fmt.Errorf("%v is not set", tokenEnv)
	}
	botAppId = os.Getenv(appIDEnv)
	if botAppId == "" {
		return fmt.Errorf("%v is not set", appIDEnv)
	}
	rrCmdId = os.Getenv(cmdIDEnv)

	pubKeyBytes, err := hex.DecodeString(os.Getenv(pubKeyEnv))
	if err != nil {
		return fmt.Errorf("failed to parse %v: %w", pubKeyEnv, err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return fmt.Errorf("%v must be a %d byte hex encoded key", pubKeyEnv,
			ed25519.PublicKeySize)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to initialize discord client: %w", err)
	}

	return nil
}

func registerSlashCommands() {
	rrCmd := rrCommand()

	if rrCmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", rrCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", rrCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set %v to keep it",
			cmd.Name, cmd.ID, cmdIDEnv)
		return
	}

	cmd, err := client.ApplicationCommandEdit(botAppId, "", rrCmdId, rrCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", rrCmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	if err := loadConfig(); err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
