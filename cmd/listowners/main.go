package main

import (
	"context"
	"fmt"
	"log"

	"kintai.app/kintai/console"
	"kintai.app/kintai/utils"
)

func main() {
	ctx := context.Background()

	db, err := console.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	owners, err := console.GetOwners(db)
	if err != nil {
		log.Fatal(err)
	}

	for _, owner := range owners {
		sub, err := console.FindSubscriptionByOwner(db, owner.ID)
		if err != nil {
			log.Fatal(err)
		}

		edition := "-"
		expires := "-"
		synced := "-"
		if sub != nil {
			edition = sub.Edition
			expires = sub.ExpiredAt.Format("2006-01-02")
			synced = utils.Format(sub.SyncedAt)
		}

		fmt.Printf("%s  %s  %s  edition=%s  expires=%s  synced=%s  active=%s\n",
			owner.ID, owner.Code, owner.Email, edition, expires, synced,
			utils.FormatBoolean(sub != nil && sub.Deactivated == 0, "yes", "no"))
	}
}
