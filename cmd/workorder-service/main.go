package main

import (
	"log"

	"github.com/maintdesk/workorder-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
