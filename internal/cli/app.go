// Package cli implements the interactive console for saving and
// redeeming secret messages over NATS.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/agency/cryptoservice/internal/common"
)

type App struct {
	client Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(client Client) *App {
	return &App{client: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (a *App) Run() {
	fmt.Fprintln(a.out, "=== Secret Message Service Client ===")
	runREPL(a, a.reader, a.out)
	a.client.Close()
	fmt.Fprintln(a.out, "Goodbye, Agent.")
}

// Save reads a message from the user, submits it and prints the generated
// credentials. The credentials are shown exactly once.
func (a *App) Save() error {
	message, err := GetMultiline(a.reader, "Enter secret message", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Save(message)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	if !resp.Success {
		fmt.Fprintln(a.out, "Error:", resp.ErrorMessage)
		return nil
	}

	fmt.Fprintln(a.out, "\n*** MESSAGE SAVED ***")
	fmt.Fprintln(a.out, "ID:", resp.ID)
	fmt.Fprintln(a.out, "Password:", resp.Password)
	fmt.Fprintln(a.out, "AES Key:", resp.AesKey)
	fmt.Fprintln(a.out, "*** Share ID, password, and AES key via secure channel! ***")
	return nil
}

// Receive prompts for the three credentials and redeems the message.
func (a *App) Receive() error {
	id, err := GetSimpleText(a.reader, "Enter message ID", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	key, err := GetSimpleText(a.reader, "Enter AES key", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Receive(id, string(password), key)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	if resp.Success {
		fmt.Fprintln(a.out, "\n*** SECRET MESSAGE ***")
		fmt.Fprintln(a.out, resp.Message)
		fmt.Fprintln(a.out, "*** Message has been deleted ***")
		return nil
	}

	fmt.Fprintln(a.out, "Error:", resp.ErrorMessage)
	if resp.RemainingTries != nil {
		fmt.Fprintln(a.out, "Remaining tries:", *resp.RemainingTries)
	}
	if resp.Deleted {
		fmt.Fprintln(a.out, "Message has been deleted!")
	}
	return nil
}
