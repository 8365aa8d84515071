package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-catalog/library"

	"github.com/mattn/go-runewidth"
)

// maxLineLength bounds a single input line; bufio's default is 64 KiB.
const maxLineLength = 1 << 20

const menu = `
==== Library Book Management System ====
1. Insert Book
2. Delete Book
3. Issue Book
4. Return Book
5. Undo Last Transaction
6. View Transactions
7. Display All Books
8. Exit`

// console reads menu selections line by line and dispatches them to the manager.
type console struct {
	sc          *bufio.Scanner
	out         io.Writer
	mgr         *library.LibraryManager
	interactive bool
}

func newConsole(in io.Reader, out io.Writer, mgr *library.LibraryManager, interactive bool) *console {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &console{sc: sc, out: out, mgr: mgr, interactive: interactive}
}

// run loops until Exit is chosen or input ends. A read error is reported
// before exiting.
func (c *console) run() {
	for {
		if c.interactive {
			fmt.Fprintln(c.out, menu)
		}
		choice, ok := c.readLine("Enter your choice: ")
		if !ok {
			if err := c.sc.Err(); err != nil {
				c.printError(fmt.Errorf("reading input: %w", err))
			}
			fmt.Fprintln(c.out, "Exiting Library System. Goodbye!")
			return
		}
		if choice == "" {
			continue
		}

		switch choice {
		case "1":
			c.handleInsert()
		case "2":
			c.handleDelete()
		case "3":
			c.handleIssue()
		case "4":
			c.handleReturn()
		case "5":
			c.handleUndo()
		case "6":
			c.handleTransactions()
		case "7":
			c.handleListBooks()
		case "8":
			fmt.Fprintln(c.out, "Exiting Library System. Goodbye!")
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice! Try again.")
		}
	}
}

// readLine prompts (when interactive) and returns the next trimmed line.
func (c *console) readLine(prompt string) (string, bool) {
	if c.interactive {
		fmt.Fprint(c.out, prompt)
	}
	if !c.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.sc.Text()), true
}

func (c *console) readBookID(prompt string) (int64, bool) {
	s, ok := c.readLine(prompt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid Book ID: %s\n", s)
		return 0, false
	}
	return id, true
}

func (c *console) handleInsert() {
	id, ok := c.readBookID("Enter Book ID: ")
	if !ok {
		return
	}
	if id <= 0 {
		fmt.Fprintln(c.out, "Invalid Book ID! Must be positive.")
		return
	}
	title, ok := c.readLine("Enter Title: ")
	if !ok {
		return
	}
	author, ok := c.readLine("Enter Author: ")
	if !ok {
		return
	}

	err := c.mgr.InsertBook(id, title, author)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book \"%s\" added successfully!\n", title)
	case errors.Is(err, library.ErrDuplicateKey):
		fmt.Fprintf(c.out, "Book ID %d already exists! Insertion cancelled.\n", id)
	case errors.Is(err, library.ErrInvalidInput):
		fmt.Fprintln(c.out, "Invalid Book ID! Must be positive.")
	default:
		c.printError(err)
	}
}

func (c *console) handleDelete() {
	id, ok := c.readBookID("Enter Book ID to delete: ")
	if !ok {
		return
	}
	err := c.mgr.DeleteBook(id)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book ID %d deleted successfully.\n", id)
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(c.out, "Book not found.")
	default:
		c.printError(err)
	}
}

func (c *console) handleIssue() {
	id, ok := c.readBookID("Enter Book ID to issue: ")
	if !ok {
		return
	}
	err := c.mgr.IssueBook(id)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book ID %d issued successfully.\n", id)
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(c.out, "Book not found.")
	case errors.Is(err, library.ErrAlreadyIssued):
		fmt.Fprintln(c.out, "Book already issued.")
	default:
		c.printError(err)
	}
}

func (c *console) handleReturn() {
	id, ok := c.readBookID("Enter Book ID to return: ")
	if !ok {
		return
	}
	err := c.mgr.ReturnBook(id)
	switch {
	case err == nil:
		fmt.Fprintf(c.out, "Book ID %d returned successfully.\n", id)
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(c.out, "Book not found.")
	case errors.Is(err, library.ErrAlreadyAvailable):
		fmt.Fprintln(c.out, "Book is already available.")
	default:
		c.printError(err)
	}
}

func (c *console) handleUndo() {
	t, err := c.mgr.Undo()
	switch {
	case err == nil:
		status := library.StatusIssued
		if t.Action == library.ActionIssue {
			status = library.StatusAvailable
		}
		fmt.Fprintf(c.out, "Undo: Book ID %d marked as %s.\n", t.BookID, status)
	case errors.Is(err, library.ErrNothingToUndo):
		fmt.Fprintln(c.out, "No transactions to undo.")
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(c.out, "Book not found for undo.")
	default:
		c.printError(err)
	}
}

func (c *console) handleTransactions() {
	txs := c.mgr.Transactions()
	if len(txs) == 0 {
		fmt.Fprintln(c.out, "No transactions yet.")
		return
	}
	fmt.Fprintln(c.out, "\nTransaction History:")
	for _, t := range txs {
		fmt.Fprintf(c.out, "Book ID %d -> %s\n", t.BookID, t.Action)
	}
}

func (c *console) handleListBooks() {
	books, err := c.mgr.ListBooks()
	if err != nil {
		c.printError(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books available in the library.")
		return
	}

	fmt.Fprintln(c.out, "\nCurrent Books in Library:")
	fmt.Fprintf(c.out, "%-5s %-30s %-25s %-10s\n", "ID", "Title", "Author", "Status")
	fmt.Fprintln(c.out, strings.Repeat("-", 73))
	for _, b := range books {
		fmt.Fprintf(c.out, "%-5d %s %s %-10s\n",
			b.ID,
			fitColumn(b.Title, 30),
			fitColumn(b.Author, 25),
			b.Status)
	}
}

func (c *console) printError(err error) {
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

// Ambiguous-width runes count as one cell whatever the locale.
var cellWidth = &runewidth.Condition{StrictEmojiNeutral: true}

// fitColumn truncates s to width terminal cells and pads it to exactly that width.
func fitColumn(s string, width int) string {
	return cellWidth.FillRight(cellWidth.Truncate(s, width, "..."), width)
}
