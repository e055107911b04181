package main

import (
	"flag"
	"log"
	"time"

	"github.com/agency/cryptoservice/internal/cli"
)

func main() {

	url := flag.String("n", "nats://localhost:4222", "NATS server URL")
	timeout := flag.Duration("t", 10*time.Second, "request timeout")
	flag.Parse()

	client, err := cli.NewNatsClient(*url, *timeout)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app := cli.NewApp(client)
	app.Run()

}
