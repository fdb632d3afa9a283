// Command tribex is a terminal client for the TriboX platform. Each
// invocation loads the persisted session state, runs one action against the
// hosted service, and prints the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tribex/internal/cache"
	"tribex/internal/config"
	"tribex/internal/gateway"
	"tribex/internal/models"
	"tribex/internal/seed"
	"tribex/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	gw := gateway.New(cfg)
	st := store.New(cfg, gw, seed.Fixed{})
	unbind := st.BindAuthEvents()
	defer unbind()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, st, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  tribex register <name> <email> <password>   - Create an account")
	fmt.Println("  tribex login <email> <password>             - Sign in and print the profile")
	fmt.Println("  tribex logout                               - Sign out and forget the session")
	fmt.Println("  tribex feed [-club <id>]                    - Print the feed")
	fmt.Println("  tribex post [-club <id>] <content>          - Publish a post")
	fmt.Println("  tribex watch                                - Stream new posts until interrupted")
	fmt.Println("  tribex clubs                                - List joined clubs")
	fmt.Println("  tribex explore                              - List public clubs")
	fmt.Println("  tribex create-club <name> [description]     - Create a club")
	fmt.Println("  tribex join <club_id>                       - Join a club")
	fmt.Println("  tribex invite <club_id>                     - Print an invite link")
	fmt.Println("  tribex wallet                               - Print balance and coin packages")
	fmt.Println("  tribex buy-coins <amount>                   - Buy a coin package")
	fmt.Println("  tribex market                               - List marketplace products")
	fmt.Println("  tribex buy <product_id>                     - Purchase a product with coins")
	fmt.Println("  tribex events                               - List upcoming events")
	fmt.Println("  tribex settings [-theme t] [-lang l]        - Show or update preferences")
}

func run(ctx context.Context, st *store.Store, command string, args []string) error {
	switch command {
	case "register":
		if len(args) < 3 {
			return fmt.Errorf("usage: tribex register <name> <email> <password>")
		}
		if err := st.Register(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Account created. Sign in with: tribex login")
		return nil

	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: tribex login <email> <password>")
		}
		if err := st.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		user, _ := st.CurrentUser()
		fmt.Printf("Signed in as %s (%s) with %d coins\n", user.Name, user.Handle, user.Coins)
		return nil

	case "logout":
		if err := st.Logout(ctx); err != nil {
			fmt.Printf("Signed out locally; remote sign-out failed: %v\n", err)
			return nil
		}
		fmt.Println("Signed out")
		return nil

	case "feed":
		fs := flag.NewFlagSet("feed", flag.ContinueOnError)
		clubID := fs.String("club", "", "restrict to one club")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := st.FetchPosts(ctx, *clubID); err != nil {
			return err
		}
		printPosts(st.Posts())
		return nil

	case "post":
		fs := flag.NewFlagSet("post", flag.ContinueOnError)
		clubID := fs.String("club", "", "post into a club")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() < 1 {
			return fmt.Errorf("usage: tribex post [-club <id>] <content>")
		}
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		post, status, err := st.CreatePost(ctx, fs.Arg(0), "", *clubID)
		if err != nil {
			return err
		}
		if status == store.WriteLocalOnly {
			fmt.Printf("Service unreachable, post kept locally (id %s)\n", post.ID)
		} else {
			fmt.Printf("Posted (id %s)\n", post.ID)
		}
		return nil

	case "watch":
		return watchFeed(ctx, st)

	case "clubs":
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		if err := st.FetchMyClubs(ctx); err != nil {
			return err
		}
		printClubs(st.Clubs())
		return nil

	case "explore":
		if err := st.FetchAllClubs(ctx); err != nil {
			return err
		}
		printClubs(st.AllClubs())
		return nil

	case "create-club":
		if len(args) < 1 {
			return fmt.Errorf("usage: tribex create-club <name> [description]")
		}
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		nc := models.NewClub{Name: args[0], Type: models.ClubTypePublic}
		if len(args) > 1 {
			nc.Description = args[1]
		}
		club, err := st.AddClub(ctx, nc)
		if err != nil {
			return err
		}
		fmt.Printf("Created club %s (id %s)\n", club.Name, club.ID)
		return nil

	case "join":
		if len(args) < 1 {
			return fmt.Errorf("usage: tribex join <club_id>")
		}
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		if err := st.FetchAllClubs(ctx); err != nil {
			return err
		}
		status, err := st.JoinClub(ctx, args[0])
		if err != nil {
			if errors.Is(err, models.ErrAlreadyMember) {
				fmt.Println("Already a member of that club")
				return nil
			}
			return err
		}
		if status == store.WriteLocalOnly {
			fmt.Println("Service unreachable, membership recorded locally")
		} else {
			fmt.Println("Joined")
		}
		return nil

	case "invite":
		if len(args) < 1 {
			return fmt.Errorf("usage: tribex invite <club_id>")
		}
		fmt.Println(st.GenerateInviteLink(args[0]))
		return nil

	case "wallet":
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		user, _ := st.CurrentUser()
		fmt.Printf("Balance: %d coins\n\n", user.Coins)
		for _, pkg := range st.CoinPackages() {
			line := fmt.Sprintf("  %5d coins  %s", pkg.Amount, pkg.Price)
			if pkg.Bonus != "" {
				line += "  (" + pkg.Bonus + ")"
			}
			fmt.Println(line)
		}
		return nil

	case "buy-coins":
		if len(args) < 1 {
			return fmt.Errorf("usage: tribex buy-coins <amount>")
		}
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		for _, pkg := range st.CoinPackages() {
			if fmt.Sprint(pkg.Amount) == args[0] {
				st.BuyCoins(pkg)
				user, _ := st.CurrentUser()
				fmt.Printf("New balance: %d coins\n", user.Coins)
				return nil
			}
		}
		return fmt.Errorf("no coin package of %s coins", args[0])

	case "market":
		owned := map[string]bool{}
		for _, id := range st.OwnedProducts() {
			owned[id] = true
		}
		for _, p := range st.Products() {
			marker := " "
			if owned[p.ID] {
				marker = "*"
			}
			fmt.Printf("%s %-8s %-35s %5d coins  %.1f★  by %s\n", marker, p.ID, p.Title, p.Price, p.Rating, p.Author)
		}
		return nil

	case "buy":
		if len(args) < 1 {
			return fmt.Errorf("usage: tribex buy <product_id>")
		}
		if err := requireSession(ctx, st); err != nil {
			return err
		}
		if err := st.PurchaseProduct(args[0]); err != nil {
			return err
		}
		user, _ := st.CurrentUser()
		fmt.Printf("Purchased. Remaining balance: %d coins\n", user.Coins)
		return nil

	case "events":
		for _, ev := range st.UpcomingEvents() {
			fmt.Printf("  %s  %s (%s)\n", ev.Date, ev.Title, ev.ClubName)
		}
		return nil

	case "settings":
		fs := flag.NewFlagSet("settings", flag.ContinueOnError)
		theme := fs.String("theme", "", "dark or light")
		lang := fs.String("lang", "", "interface language")
		currency := fs.String("currency", "", "display currency")
		if err := fs.Parse(args); err != nil {
			return err
		}
		patch := models.AppSettingsPatch{}
		if *theme != "" {
			t := models.Theme(*theme)
			patch.Theme = &t
		}
		if *lang != "" {
			patch.Language = lang
		}
		if *currency != "" {
			patch.Currency = currency
		}
		if patch.Theme != nil || patch.Language != nil || patch.Currency != nil {
			if err := st.UpdateAppSettings(patch); err != nil {
				return err
			}
		}
		settings := st.AppSettings()
		fmt.Printf("language=%s currency=%s theme=%s reducedMotion=%v\n",
			settings.Language, settings.Currency, settings.Theme, settings.ReducedMotion)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// requireSession restores the persisted session and fails if nobody is
// signed in.
func requireSession(ctx context.Context, st *store.Store) error {
	if err := st.CheckSession(ctx); err != nil {
		return err
	}
	if _, ok := st.CurrentUser(); !ok {
		return models.ErrNotAuthenticated
	}
	return nil
}

// watchFeed streams new posts until the process is interrupted.
func watchFeed(ctx context.Context, st *store.Store) error {
	watchCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := st.FetchPosts(ctx, ""); err != nil {
		return err
	}
	printPosts(st.Posts())

	if err := st.SubscribeFeed(watchCtx); err != nil {
		return err
	}
	fmt.Println("Watching for new posts, press Ctrl+C to stop...")

	seen := len(st.Posts())
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-watchCtx.Done():
			return nil
		case <-ticker.C:
			posts := st.Posts()
			if len(posts) > seen {
				printPosts(posts[:len(posts)-seen])
				seen = len(posts)
			}
		}
	}
}

func printPosts(posts []models.Post) {
	for _, p := range posts {
		author := "unknown"
		if p.Author != nil {
			author = p.Author.Name
		}
		scope := ""
		if p.Club != nil {
			scope = " in " + p.Club.Name
		}
		fmt.Printf("[%s] %s%s: %s  (%d likes, %d comments)\n",
			p.CreatedAt.Format("2006-01-02 15:04"), author, scope, p.Content, p.LikesCount, p.CommentsCount)
	}
}

func printClubs(clubs []models.Club) {
	for _, c := range clubs {
		premium := ""
		if c.IsPremium {
			premium = " [premium]"
		}
		fmt.Printf("%-38s %-28s %s/%d members%s\n", c.ID, c.Name, c.Type, c.MembersCount, premium)
	}
}
