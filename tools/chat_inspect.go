// chat_inspect dumps the stored chat messages of a Badger database as a
// table, soft-deleted rows included, for moderation audits.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type storedMessage struct {
	ID            uint64    `json:"id"`
	EventID       string    `json:"event_id"`
	AuthorID      string    `json:"author_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	IsDeleted     bool      `json:"is_deleted"`
	IsHighlighted bool      `json:"is_highlighted"`
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	event := flag.String("event", "", "Restrict the scan to one event id")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Event", "Author", "At", "State", "Text"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	prefix := []byte("msg:")
	if *event != "" {
		prefix = []byte("msg:" + *event + ":")
	}

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var msg storedMessage
				if err := json.Unmarshal(v, &msg); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				state := color.Green.Sprint("active")
				if msg.IsDeleted {
					state = color.Red.Sprint("deleted")
				}
				if msg.IsHighlighted {
					state = color.Yellow.Sprint("highlighted")
				}

				table.Append([]string{
					fmt.Sprintf("%d", msg.ID),
					shortID(msg.EventID),
					shortID(msg.AuthorID),
					msg.CreatedAt.Format("15:04:05"),
					state,
					msg.Text,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}
