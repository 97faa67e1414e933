// Command cardboard-demo seeds the configured store with a legacy flat
// dashboard, the shape the oldest clients wrote, so the migration path can
// be tried with `cardboard migrate` or any other command.
package main

import (
	"context"
	"fmt"

	"tableflip.dev/cardboard/pkg/card"
	"tableflip.dev/cardboard/pkg/store"
)

const legacy = `{
  "newCard": [
    {"icon": "mail.png", "url": "https://mail.example.com", "title": "Mail"},
    {"icon": "calendar.png", "url": "https://calendar.example.com", "title": "Calendar"},
    {"icon": "line.svg", "isDivider": true},
    {"icon": "docs.png", "url": "https://docs.example.com", "title": "Docs"}
  ],
  "dailyTasks": [
    {"text": "Inbox zero", "url": "https://mail.example.com"},
    {"text": "Standup notes", "url": "https://docs.example.com/standup"}
  ],
  "copyPaste": {
    "Replies": [
      {"text": "Thanks", "copyText": "Thanks, I'll take a look today."}
    ]
  },
  "reminders": {
    "Bills": [
      {"title": "Rent", "type": "days", "schedule": {"type": "monthly", "dayOfMonth": 1}},
      {"title": "Groceries", "type": "interval", "interval": 400, "currentNumber": 310,
       "intervalType": "limit", "intervalUnit": "dollar"}
    ],
    "Home": [
      {"title": "Bins out", "type": "days", "schedule": {"type": "weekly", "weekday": 2}}
    ]
  },
  "sectionColors": {"reminders": "#d20f39"},
  "darkMode": false
}`

func main() {
	cfg, err := store.LoadConfig()
	if err != nil {
		panic(err)
	}
	kv := store.NewKV(cfg.BasePath(), cfg.Quota())
	if kv.Has(store.DocumentKey) {
		fmt.Printf("%s already holds a dashboard, not seeding\n", cfg.BasePath())
		return
	}
	if err := kv.Write(store.LegacyKey, []byte(legacy)); err != nil {
		panic(err)
	}

	p := store.New(kv)
	d := card.New()
	report, err := p.Load(context.Background(), d)
	if err != nil {
		panic(err)
	}
	fmt.Printf("seeded %s, migrated schema %d to %d\n", cfg.BasePath(), report.From, report.To)
	for _, s := range d.Sections {
		fmt.Printf("  %-12s %s\n", s.ID, s.Title)
	}
}
