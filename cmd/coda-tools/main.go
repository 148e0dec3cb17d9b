/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := Execute(); err != nil {
		log.Fatal(err)
	}
}
