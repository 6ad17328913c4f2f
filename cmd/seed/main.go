package main

import (
	"context"
	"errors"

	"famreg/internal/config"
	"famreg/internal/db"
	"famreg/internal/logging"
	"famreg/internal/model"
	"famreg/internal/repository"
	"famreg/internal/service"
)

// Demo fixtures for local development. The seed is idempotent: users are
// looked up by email and skipped if already present.
type seedUser struct {
	email    string
	password string
	name     string
	super    bool
	tags     []string
	children []string
	parents  []seedParent
}

type seedParent struct {
	name     string
	address  string
	age      int
	job      string
	tags     []string
	children []string
}

var fixtures = []seedUser{
	{
		email:    "admin@example.com",
		password: "admin12345",
		super:    true,
	},
	{
		email:    "demo@example.com",
		password: "demo12345",
		name:     "Demo User",
		tags:     []string{"neighbors", "school", "soccer club"},
		children: []string{"Mia", "Noah", "Olivia"},
		parents: []seedParent{
			{
				name:     "Alex Carter",
				address:  "12 Elm Street",
				age:      41,
				job:      "teacher",
				tags:     []string{"school", "soccer club"},
				children: []string{"Mia", "Noah"},
			},
			{
				name:     "Sam Rivera",
				address:  "7 Oak Avenue",
				age:      38,
				job:      "nurse",
				tags:     []string{"neighbors"},
				children: []string{"Olivia"},
			},
		},
	},
}

func main() {
	log := logging.L()
	log.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Child{},
		&model.Parent{},
	); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	childRepo := repository.NewChildRepository(gormDB)
	parentRepo := repository.NewParentRepository(gormDB)

	userService := service.NewUserService(userRepo)
	ctx := context.Background()

	for _, fixture := range fixtures {
		user, err := seedOneUser(ctx, userService, fixture)
		if err != nil {
			if errors.Is(err, service.ErrUserAlreadyExists) {
				log.WithField("email", fixture.email).Info("user exists, skipping")
				continue
			}
			log.WithError(err).WithField("email", fixture.email).Fatal("failed to seed user")
		}

		tagsByName := map[string]model.Tag{}
		for _, name := range fixture.tags {
			tag := model.Tag{Name: name, UserID: user.ID}
			if err := tagRepo.Create(ctx, &tag); err != nil {
				log.WithError(err).Fatal("failed to seed tag")
			}
			tagsByName[name] = tag
		}

		childrenByName := map[string]model.Child{}
		for _, name := range fixture.children {
			child := model.Child{Name: name, UserID: user.ID}
			if err := childRepo.Create(ctx, &child); err != nil {
				log.WithError(err).Fatal("failed to seed child")
			}
			childrenByName[name] = child
		}

		for _, sp := range fixture.parents {
			tags := make([]model.Tag, 0, len(sp.tags))
			for _, name := range sp.tags {
				tags = append(tags, tagsByName[name])
			}
			children := make([]model.Child, 0, len(sp.children))
			for _, name := range sp.children {
				children = append(children, childrenByName[name])
			}

			parent := model.Parent{
				UserID:  user.ID,
				Name:    sp.name,
				Address: sp.address,
				Age:     sp.age,
				Job:     sp.job,
			}
			if err := parentRepo.Create(ctx, &parent, tags, children); err != nil {
				log.WithError(err).Fatal("failed to seed parent")
			}
		}

		log.WithField("email", user.Email).Info("seeded user with demo data")
	}

	log.Info("seed completed")
}

func seedOneUser(ctx context.Context, users service.UserService, fixture seedUser) (*model.User, error) {
	if fixture.super {
		return users.CreateSuperuser(ctx, fixture.email, fixture.password)
	}
	return users.Create(ctx, fixture.email, fixture.password, fixture.name)
}
