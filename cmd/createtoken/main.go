package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"kintai.app/kintai/security"
)

func main() {
	ownerID := flag.String("owner", "", "owner id to mint a token for")
	name := flag.String("name", "", "owner display name")
	email := flag.String("email", "", "owner email")
	expiry := flag.Int64("expiry", 3600, "token lifetime in seconds")
	flag.Parse()

	if *ownerID == "" {
		log.Fatal("-owner is required")
	}

	secret := os.Getenv("KINTAI_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("KINTAI_SIGNING_SECRET is required")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		OwnerID: *ownerID,
		Name:    *name,
		Email:   *email,
	}, secret, *expiry)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
