// Command dashboard is a terminal client for managing a profile and its
// links. It keeps a local State, sends commands through the API client,
// and applies the returned patches.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/linkbio/backend/internal/dashboard"
)

func main() {
	var apiURL string
	flag.StringVar(&apiURL, "api", "http://localhost:3000", "Base URL of the API server")
	flag.Parse()

	client := dashboard.NewClient(apiURL)
	state := dashboard.State{}

	fmt.Println("linkbio dashboard. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt(state))
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]
		if command == "quit" || command == "exit" {
			break
		}

		next, err := run(client, state, command, args, scanner)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		state = next
	}
}

func prompt(state dashboard.State) string {
	if state.SignedIn() {
		return state.Session.Email + "> "
	}
	return "> "
}

func run(client *dashboard.Client, state dashboard.State, command string, args []string, scanner *bufio.Scanner) (dashboard.State, error) {
	ctx := context.Background()

	switch command {
	case "help":
		printHelp()
		return state, nil

	case "signup":
		if len(args) < 3 {
			return state, fmt.Errorf("usage: signup <email> <username> <display name...>")
		}
		password, err := readPassword()
		if err != nil {
			return state, err
		}
		if err := client.Signup(ctx, args[0], password, args[1], strings.Join(args[2:], " ")); err != nil {
			return state, err
		}
		fmt.Println("Account created. Sign in to continue.")
		return state, nil

	case "signin":
		if len(args) != 1 {
			return state, fmt.Errorf("usage: signin <email>")
		}
		password, err := readPassword()
		if err != nil {
			return state, err
		}
		patch, err := client.Signin(ctx, args[0], password)
		if err != nil {
			return state, err
		}
		state = dashboard.Reduce(state, *patch)
		// A fresh session reloads profile and links
		return reload(ctx, client, state)

	case "signout":
		patch, err := client.Signout(ctx)
		if err != nil {
			return state, err
		}
		fmt.Println("Signed out.")
		return dashboard.Reduce(state, *patch), nil

	case "profile":
		printProfile(state)
		return state, nil

	case "set":
		if len(args) < 2 {
			return state, fmt.Errorf("usage: set <username|name|bio|avatar|theme|background> <value...>")
		}
		update, err := profileUpdate(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return state, err
		}
		patch, err := client.UpdateProfile(ctx, update)
		if err != nil {
			return state, err
		}
		fmt.Println("Profile updated.")
		return dashboard.Reduce(state, *patch), nil

	case "links":
		printLinks(state)
		return state, nil

	case "add":
		if len(args) < 2 {
			return state, fmt.Errorf("usage: add <url> <title...>")
		}
		patch, err := client.AddLink(ctx, strings.Join(args[1:], " "), args[0], "")
		if err != nil {
			return state, err
		}
		fmt.Println("Link added.")
		return dashboard.Reduce(state, *patch), nil

	case "edit":
		return editLink(ctx, client, state, args, scanner)

	case "toggle":
		index, err := linkIndex(state, args)
		if err != nil {
			return state, err
		}
		target := state.Links[index]
		active := !target.IsActive
		patch, err := client.UpdateLink(ctx, target.ID, dashboard.LinkUpdate{IsActive: &active})
		if err != nil {
			return state, err
		}
		return dashboard.Reduce(state, *patch), nil

	case "delete":
		index, err := linkIndex(state, args)
		if err != nil {
			return state, err
		}
		patch, err := client.DeleteLink(ctx, state.Links[index].ID)
		if err != nil {
			return state, err
		}
		fmt.Println("Link deleted.")
		return dashboard.Reduce(state, *patch), nil

	case "reorder":
		if len(args) == 0 {
			return state, fmt.Errorf("usage: reorder <index> <index> ... (new order, 1-based)")
		}
		ids := make([]uuid.UUID, 0, len(args))
		for _, arg := range args {
			index, err := parseIndex(state, arg)
			if err != nil {
				return state, err
			}
			ids = append(ids, state.Links[index].ID)
		}
		patch, err := client.ReorderLinks(ctx, ids)
		if err != nil {
			return state, err
		}
		fmt.Println("Links reordered.")
		return dashboard.Reduce(state, *patch), nil

	default:
		return state, fmt.Errorf("unknown command %q, try 'help'", command)
	}
}

// editLink walks one field-by-field edit of a single link, holding the
// edit lock for its duration.
func editLink(ctx context.Context, client *dashboard.Client, state dashboard.State, args []string, scanner *bufio.Scanner) (dashboard.State, error) {
	index, err := linkIndex(state, args)
	if err != nil {
		return state, err
	}
	target := state.Links[index]

	state, err = state.StartEditing(target.ID)
	if err != nil {
		return state, err
	}

	update := dashboard.LinkUpdate{}
	if v, ok := promptField(scanner, "title", target.Title); ok {
		update.Title = &v
	}
	if v, ok := promptField(scanner, "url", target.URL); ok {
		update.URL = &v
	}
	if v, ok := promptField(scanner, "description", target.Description); ok {
		update.Description = &v
	}

	if update.Title == nil && update.URL == nil && update.Description == nil {
		fmt.Println("Nothing changed.")
		return state.StopEditing(), nil
	}

	patch, err := client.UpdateLink(ctx, target.ID, update)
	if err != nil {
		return state.StopEditing(), err
	}
	fmt.Println("Link updated.")
	return dashboard.Reduce(state, *patch), nil
}

// promptField shows the current value and reads a replacement. An empty
// line keeps the current value.
func promptField(scanner *bufio.Scanner, name, current string) (string, bool) {
	fmt.Printf("  %s [%s]: ", name, current)
	if !scanner.Scan() {
		return "", false
	}
	value := strings.TrimSpace(scanner.Text())
	if value == "" {
		return "", false
	}
	return value, true
}

func reload(ctx context.Context, client *dashboard.Client, state dashboard.State) (dashboard.State, error) {
	profilePatch, err := client.FetchProfile(ctx)
	if err != nil {
		return state, err
	}
	state = dashboard.Reduce(state, *profilePatch)

	linksPatch, err := client.FetchLinks(ctx)
	if err != nil {
		return state, err
	}
	state = dashboard.Reduce(state, *linksPatch)

	fmt.Printf("Signed in as %s (%d links).\n", state.Session.Email, len(state.Links))
	return state, nil
}

func profileUpdate(field, value string) (dashboard.ProfileUpdate, error) {
	update := dashboard.ProfileUpdate{}
	switch field {
	case "username":
		update.Username = &value
	case "name":
		update.DisplayName = &value
	case "bio":
		update.Bio = &value
	case "avatar":
		update.AvatarURL = &value
	case "theme":
		update.ThemeColor = &value
	case "background":
		update.BackgroundColor = &value
	default:
		return update, fmt.Errorf("unknown profile field %q", field)
	}
	return update, nil
}

func linkIndex(state dashboard.State, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a single link index, see 'links'")
	}
	return parseIndex(state, args[0])
}

func parseIndex(state dashboard.State, arg string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil {
		return 0, fmt.Errorf("invalid link index %q", arg)
	}
	if index < 1 || index > len(state.Links) {
		return 0, fmt.Errorf("link index %d out of range, have %d links", index, len(state.Links))
	}
	return index - 1, nil
}

func readPassword() (string, error) {
	fmt.Print("password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

func printProfile(state dashboard.State) {
	if state.Profile == nil {
		fmt.Println("No profile yet. Use 'set username <name>' to create one.")
		return
	}
	p := state.Profile
	fmt.Printf("@%s  %s\n", p.Username, p.DisplayName)
	if p.Bio != "" {
		fmt.Println(p.Bio)
	}
	fmt.Printf("theme %s on %s\n", p.ThemeColor, p.BackgroundColor)
}

func printLinks(state dashboard.State) {
	if len(state.Links) == 0 {
		fmt.Println("No links yet. Use 'add <url> <title>'.")
		return
	}
	for i, l := range state.Links {
		marker := " "
		if !l.IsActive {
			marker = "-"
		}
		fmt.Printf("%2d %s %-30s %s (%d clicks)\n", i+1, marker, l.Title, l.URL, l.ClickCount)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  signup <email> <username> <display name>   create an account
  signin <email>                             sign in
  signout                                    sign out
  profile                                    show the profile
  set <field> <value>                        update a profile field
                                             (username, name, bio, avatar, theme, background)
  links                                      list links
  add <url> <title>                          add a link
  edit <index>                               edit a link field by field
  toggle <index>                             flip a link's active flag
  delete <index>                             delete a link
  reorder <index> <index> ...                reorder links (1-based, new order)
  quit`)
}
