package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/client"
	"ctchen222/rehla/internal/client/store"
	"ctchen222/rehla/internal/logger"
)

const usage = `usage: rehla <command> [flags]

commands:
  register      create an account and sign in
  login         sign in
  logout        forget the saved session
  me            show the signed-in user
  stories       list travel stories
  post          share a story (-title -location -description -image)
  edit <id>     change a story you own
  delete <id>   delete a story you own (-yes skips confirmation)
  destinations  list the destination catalog (-preview for the first three)
  fav           add|remove|toggle <id>, list, clear
  theme         show, toggle, light or dark
`

var errUsage = errors.New("invalid usage")

type app struct {
	api       *client.API
	session   *client.Session
	favorites *client.Favorites
	theme     *client.Theme
	con       *console
}

func run(ctx context.Context, args []string, con *console) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		con.printf("%s", usage)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, "text", false))

	st, err := store.Open(ctx, cfg.StatePath)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := newApp(ctx, client.NewAPI(cfg.APIURL, nil), st, con)
	if err != nil {
		return err
	}

	if err := a.dispatch(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			con.printf("%s", usage)
		}
		return err
	}
	return nil
}

func newApp(ctx context.Context, api *client.API, st store.Store, con *console) (*app, error) {
	favorites, err := client.LoadFavorites(ctx, st)
	if err != nil {
		return nil, err
	}
	theme, err := client.LoadTheme(ctx, st)
	if err != nil {
		return nil, err
	}
	return &app{
		api:       api,
		session:   client.NewSession(api, st),
		favorites: favorites,
		theme:     theme,
		con:       con,
	}, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "me":
		return a.me(ctx)
	case "stories":
		return a.stories(ctx)
	case "post":
		return a.post(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "destinations":
		return a.destinations(ctx, args)
	case "fav":
		return a.fav(ctx, args)
	case "theme":
		return a.themeCmd(ctx, args)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if err := a.fill(name, "Name"); err != nil {
		return err
	}
	if err := a.fill(email, "Email"); err != nil {
		return err
	}
	if err := a.fillPassword(password); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	a.con.printf("Welcome, %s!\n", user.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if err := a.fill(email, "Email"); err != nil {
		return err
	}
	if err := a.fillPassword(password); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	a.con.printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.con.println("Signed out.")
	return nil
}

func (a *app) me(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return err
	}
	user := a.session.User()
	if user == nil {
		a.con.println("Not signed in.")
		return nil
	}
	a.con.printf("%s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}

func (a *app) stories(ctx context.Context) error {
	token, err := a.optionalToken(ctx)
	if err != nil {
		return err
	}

	stories, err := a.api.Stories(ctx, token)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		a.con.println("No stories yet.")
		return nil
	}
	for _, s := range stories {
		a.con.printf("%s  %s, %s%s\n", s.ID, s.Title, s.Location, a.marks(s))
		a.con.printf("    %s\n", s.Description)
		author := "unknown traveler"
		if s.Author != nil {
			author = s.Author.Name
		}
		a.con.printf("    by %s on %s  %s\n", author, s.CreatedAt.Format("2006-01-02"), a.imageURL(s.ImageURL))
	}
	return nil
}

func (a *app) marks(s *models.StoryView) string {
	var m []string
	if s.IsOwner {
		m = append(m, "yours")
	}
	if a.favorites.Contains(s.ID) {
		m = append(m, "saved")
	}
	if len(m) == 0 {
		return ""
	}
	return " [" + strings.Join(m, ", ") + "]"
}

func (a *app) post(ctx context.Context, args []string) error {
	fs := newFlagSet("post")
	title := fs.String("title", "", "story title")
	location := fs.String("location", "", "where it happened")
	description := fs.String("description", "", "what happened")
	imagePath := fs.String("image", "", "path to the trip photo")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	token, err := a.requireToken(ctx)
	if err != nil {
		return err
	}
	image, err := openImage(*imagePath)
	if err != nil {
		return err
	}

	story, err := a.api.CreateStory(ctx, token, client.StoryForm{
		Title:       title,
		Location:    location,
		Description: description,
	}, image)
	if err != nil {
		return err
	}
	a.con.printf("Story created: %s\n", story.ID)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, rest, err := splitID(args)
	if err != nil {
		return err
	}

	fs := newFlagSet("edit")
	title := fs.String("title", "", "new title")
	location := fs.String("location", "", "new location")
	description := fs.String("description", "", "new description")
	imagePath := fs.String("image", "", "path to a replacement photo")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var form client.StoryForm
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			form.Title = title
		case "location":
			form.Location = location
		case "description":
			form.Description = description
		}
	})

	token, err := a.requireToken(ctx)
	if err != nil {
		return err
	}
	image, err := openImage(*imagePath)
	if err != nil {
		return err
	}

	story, err := a.api.UpdateStory(ctx, token, id, form, image)
	if err != nil {
		return err
	}
	a.con.printf("Story updated: %s\n", story.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, rest, err := splitID(args)
	if err != nil {
		return err
	}

	fs := newFlagSet("delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	token, err := a.requireToken(ctx)
	if err != nil {
		return err
	}
	if !*yes {
		ok, err := a.con.confirm(fmt.Sprintf("Delete story %s?", id))
		if err != nil {
			return err
		}
		if !ok {
			a.con.println("Cancelled.")
			return nil
		}
	}

	if err := a.api.DeleteStory(ctx, token, id); err != nil {
		return err
	}
	a.con.println("Story deleted.")
	return nil
}

func (a *app) destinations(ctx context.Context, args []string) error {
	fs := newFlagSet("destinations")
	preview := fs.Bool("preview", false, "only the featured destinations")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var (
		list []*models.Destination
		err  error
	)
	if *preview {
		list, err = a.api.DestinationsPreview(ctx)
	} else {
		list, err = a.api.Destinations(ctx)
	}
	if err != nil {
		return err
	}

	for _, d := range list {
		saved := ""
		if a.favorites.Contains(d.ID) {
			saved = " [saved]"
		}
		a.con.printf("%s  %s, %s (%s)%s\n", d.ID, d.Title, d.Location, d.Region, saved)
	}
	return nil
}

func (a *app) fav(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: fav needs a subcommand", errUsage)
	}

	switch args[0] {
	case "list":
		items := a.favorites.Items()
		if len(items) == 0 {
			a.con.println("No favorites saved.")
			return nil
		}
		for _, f := range items {
			a.con.printf("%s  %s, %s\n", f.ID, f.Title, f.Location)
		}
		return nil
	case "clear":
		if err := a.favorites.Clear(ctx); err != nil {
			return err
		}
		a.con.println("Favorites cleared.")
		return nil
	case "remove":
		id, _, err := splitID(args[1:])
		if err != nil {
			return err
		}
		if err := a.favorites.Remove(ctx, id); err != nil {
			return err
		}
		a.con.printf("Removed %s (%d saved)\n", id, a.favorites.Count())
		return nil
	case "add", "toggle":
		id, _, err := splitID(args[1:])
		if err != nil {
			return err
		}
		if args[0] == "toggle" && a.favorites.Contains(id) {
			if _, err := a.favorites.Toggle(ctx, client.Favorite{ID: id}); err != nil {
				return err
			}
			a.con.printf("Removed %s (%d saved)\n", id, a.favorites.Count())
			return nil
		}

		item, err := a.lookupFavorite(ctx, id)
		if err != nil {
			return err
		}
		if err := a.favorites.Add(ctx, *item); err != nil {
			return err
		}
		a.con.printf("Saved %s (%d saved)\n", item.Title, a.favorites.Count())
		return nil
	}
	return fmt.Errorf("%w: unknown fav subcommand %q", errUsage, args[0])
}

// lookupFavorite finds id among the stories, then the destinations.
func (a *app) lookupFavorite(ctx context.Context, id string) (*client.Favorite, error) {
	stories, err := a.api.Stories(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, s := range stories {
		if s.ID == id {
			return &client.Favorite{ID: s.ID, Title: s.Title, Location: s.Location, Description: s.Description, ImageURL: s.ImageURL}, nil
		}
	}

	destinations, err := a.api.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range destinations {
		if d.ID == id {
			return &client.Favorite{ID: d.ID, Title: d.Title, Location: d.Location, Description: d.Description, ImageURL: d.ImageURL}, nil
		}
	}
	return nil, fmt.Errorf("no story or destination with id %s", id)
}

func (a *app) themeCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.con.printf("Theme: %s\n", a.theme.Current())
		return nil
	}

	if args[0] == "toggle" {
		mode, err := a.theme.Toggle(ctx)
		if err != nil {
			return err
		}
		a.con.printf("Theme: %s\n", mode)
		return nil
	}

	mode, err := client.ParseThemeMode(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := a.theme.Set(ctx, mode); err != nil {
		return err
	}
	a.con.printf("Theme: %s\n", mode)
	return nil
}

func (a *app) fill(v *string, prompt string) error {
	if *v != "" {
		return nil
	}
	answer, err := a.con.ask(prompt)
	if err != nil {
		return err
	}
	*v = answer
	return nil
}

func (a *app) fillPassword(v *string) error {
	if *v != "" {
		return nil
	}
	answer, err := a.con.askPassword()
	if err != nil {
		return err
	}
	*v = answer
	return nil
}

// optionalToken restores the session when one is saved; failures fall back
// to anonymous access.
func (a *app) optionalToken(ctx context.Context) (string, error) {
	if err := a.session.Restore(ctx); err != nil {
		slog.WarnContext(ctx, "continuing without session", "error", err)
		return "", nil
	}
	return a.session.Token(), nil
}

func (a *app) requireToken(ctx context.Context) (string, error) {
	if err := a.session.Restore(ctx); err != nil {
		return "", err
	}
	if !a.session.IsAuthenticated() {
		return "", errors.New("not signed in, run 'rehla login' first")
	}
	return a.session.Token(), nil
}

func (a *app) imageURL(u string) string {
	if strings.HasPrefix(u, "/") {
		return a.api.BaseURL() + u
	}
	return u
}

func splitID(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, fmt.Errorf("%w: missing id", errUsage)
	}
	return args[0], args[1:], nil
}

func openImage(path string) (*client.Image, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &client.Image{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	}, nil
}
