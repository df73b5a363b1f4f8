// Seeds users from a JSON file: [{"phone":"+7...","name":"...","role":"admin","team_id":3}].
// Teams and the material catalog are seeded by migrations; users carry real
// phone numbers and stay out of version control.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/awrteam/awr/internal/config"
	"github.com/awrteam/awr/internal/identity"
	"github.com/awrteam/awr/internal/infra/db"
	"github.com/awrteam/awr/internal/infra/logger"
)

type seedUser struct {
	Phone  string        `json:"phone"`
	Name   string        `json:"name"`
	Role   identity.Role `json:"role"`
	TeamID *int64        `json:"team_id"`
}

func main() {
	var file string
	flag.StringVar(&file, "file", "seed-users.json", "path to the users JSON file")
	flag.Parse()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}
	log := logger.New(os.Stdout, cfg.App.Env)

	raw, err := os.ReadFile(file)
	if err != nil {
		log.Error("read seed file failed", "err", err)
		os.Exit(1)
	}
	var users []seedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Error("parse seed file failed", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := identity.NewRepo(pool)
	for _, u := range users {
		if !identity.ValidRole(u.Role) {
			log.Error("skipping user with unknown role", "phone", u.Phone, "role", u.Role)
			continue
		}
		if _, err := repo.Upsert(ctx, u.Phone, u.Name, u.Role, u.TeamID); err != nil {
			log.Error("upsert failed", "phone", u.Phone, "err", err)
			os.Exit(1)
		}
	}
	log.Info("users seeded", "count", len(users))
}
