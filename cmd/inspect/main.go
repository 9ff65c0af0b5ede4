// Command inspect dumps the stored notifications of a Badger directory as a table.
// It opens the database read-only so it can run next to a live server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"pulse/infrastructure/storage"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	recipient := flag.String("recipient", "", "Only show the inbox of this user")
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
	table.SetHeader([]string{"ID", "Recipient", "Sender", "Type", "Target", "Read", "Created"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")

	prefix := []byte("notif:")
	if *recipient != "" {
		prefix = storage.RecipientPrefix(*recipient)
	}

	total, unread := 0, 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				n, err := storage.DecodeNotification(v)
				if err != nil {
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				total++
				read := strconv.FormatBool(n.IsRead)
				if !n.IsRead {
					unread++
					read = color.Yellow.Sprint(read)
				}
				target := strings.TrimPrefix(strings.Join([]string{n.PostID, n.ReelID}, " "), " ")
				table.Append([]string{
					n.ID.String()[:8],
					n.Recipient,
					n.Sender,
					string(n.Type),
					target,
					read,
					n.CreatedAt.Format("2006-01-02 15:04:05"),
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
		log.Fatal("Error while scanning Badger: ", err)
	}

	table.Render()
	color.Green.Printf("\n%d notifications, %d unread\n", total, unread)
}
