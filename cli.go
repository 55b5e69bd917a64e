package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go-pacha/models"
	"go-pacha/services"
	"go-pacha/utils/errors"
)

// cli performs the caller-side checks the client leaves to its callers:
// session gating, the already-a-favorite notice and review validation.
type cli struct {
	client   *services.APIClient
	social   *services.SocialService
	profiles *services.ProfileService
	feed     *services.FeedService
	notes    *services.NotesService
	out      io.Writer
}

var seedFeed = []models.FeedPost{
	{ID: "post-1", Autor: "María Quispe", Texto: "Amanecer en el Cañón del Colca, los cóndores no fallan 🦅", Likes: 24},
	{ID: "post-2", Autor: "Jorge Salas", Texto: "Queso helado en la Plaza de Armas después de recorrer Santa Catalina", Likes: 12},
	{ID: "post-3", Autor: "Lucía Mamani", Texto: "El Misti desde el mirador de Yanahuara, imperdible al atardecer", Likes: 31},
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	switch cmd {
	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		creds := models.Credentials{Email: *email, Password: *password}
		if err := creds.ValidateLogin(); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput.Code, "Por favor completa todos los campos", 0)
		}
		return c.printAuth(c.client.Login(ctx, creds.Email, creds.Password))

	case "register":
		nombre := fs.String("nombre", "", "display name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		creds := models.Credentials{Nombre: *nombre, Email: *email, Password: *password}
		if err := creds.ValidateRegistration(); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput.Code, "Datos de registro inválidos", 0)
		}
		return c.printAuth(c.client.Register(ctx, creds.Nombre, creds.Email, creds.Password))

	case "logout":
		c.client.Logout(ctx)
		fmt.Fprintln(c.out, "Sesión cerrada")
		return nil

	case "whoami":
		user, err := c.client.GetUserInfo(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(c.out, "Invitado")
			return nil
		}
		fmt.Fprintf(c.out, "%s <%s> (id %d)\n", user.Nombre, user.Email, user.ID)
		return nil

	case "places":
		category := fs.String("category", "", "category filter (todos for any)")
		query := fs.String("q", "", "name search")
		if err := fs.Parse(args); err != nil {
			return err
		}
		places, err := c.client.GetTouristLocations(ctx)
		if err != nil {
			return err
		}
		places = services.FilterPlaces(services.DedupePlaces(places), *category, *query)
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOMBRE\tCATEGORÍA")
		for _, p := range places {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Nombre, p.Categoria)
		}
		return tw.Flush()

	case "favorites":
		favs, err := c.client.GetFavorites(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FAVORITO\tLUGAR\tNOMBRE")
		for _, f := range favs {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", f.FavoritoID, f.LugarID, f.Nombre)
		}
		return tw.Flush()

	case "fav-add":
		placeID := fs.Int("place", 0, "place id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		favs, err := c.client.GetFavorites(ctx)
		if err != nil {
			return err
		}
		if services.FavoritePlaceIDs(favs)[*placeID] {
			fmt.Fprintln(c.out, "Este lugar ya está en tus favoritos")
			return nil
		}
		if _, err := c.client.AddFavorite(ctx, *placeID); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Agregado a favoritos")
		return nil

	case "fav-remove":
		favID := fs.Int("id", 0, "favorite id (not place id)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		favs, err := c.client.GetFavorites(ctx)
		if err != nil {
			return err
		}
		remaining, err := services.RemoveFavoriteOptimistic(favs, *favID, func(id int) (bool, error) {
			return c.client.RemoveFavorite(ctx, id)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Favorito eliminado, quedan %d\n", len(remaining))
		return nil

	case "reviews":
		userID := fs.Int("user", 0, "another user's id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var reviews []models.Resena
		if *userID != 0 {
			reviews = c.client.ReviewsByUser(ctx, *userID)
		} else {
			var err error
			if reviews, err = c.client.GetMyReviews(ctx); err != nil {
				return err
			}
		}
		for _, r := range reviews {
			fmt.Fprintf(c.out, "%s %s\n  %s\n", strings.Repeat("★", r.Calificacion), r.LugarNombre, r.Texto)
		}
		return nil

	case "review":
		placeID := fs.Int("place", 0, "place id")
		rating := fs.Int("rating", 0, "rating 1-5")
		text := fs.String("text", "", "review text")
		if err := fs.Parse(args); err != nil {
			return err
		}
		input := models.ReviewInput{LugarID: *placeID, Calificacion: *rating, Texto: *text}
		if err := input.Validate(); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput.Code, "Selecciona una calificación y escribe tu reseña", 0)
		}
		if _, err := c.client.CreateReview(ctx, input.LugarID, input.Calificacion, strings.TrimSpace(input.Texto)); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Reseña publicada")
		return nil

	case "users":
		users, err := c.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		c.printUsers(users)
		return nil

	case "stats":
		stats, err := c.client.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "categorías: %d\nlugares: %d\nusuarios: %d\n", stats.Categorias, stats.Lugares, stats.Usuarios)
		return nil

	case "rdf":
		format := fs.String("format", "turtle", "turtle|rdfxml|jsonld|ntriples")
		out := fs.String("out", "", "write to file instead of stdout")
		if err := fs.Parse(args); err != nil {
			return err
		}
		doc, err := c.client.FetchRDF(ctx, *format)
		if err != nil {
			return err
		}
		if *out == "" {
			_, err = io.WriteString(c.out, doc.Body)
			return err
		}
		if err := os.WriteFile(*out, []byte(doc.Body), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s guardado en %s\n", doc.Format.Name, *out)
		return nil

	case "friend-request", "friend-accept", "friend-reject", "friend-remove":
		return c.relation(ctx, fs, cmd, args)

	case "friends":
		query := fs.String("q", "", "search people by name or email")
		if err := fs.Parse(args); err != nil {
			return err
		}
		me, err := c.session(ctx)
		if err != nil {
			return err
		}
		all, err := c.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		friends, err := c.social.Friends(ctx, me.ID, all)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Amigos:")
		c.printUsers(friends)
		fmt.Fprintln(c.out, "Sugerencias:")
		for _, u := range services.SuggestUsers(all, me.ID, friends, *query) {
			state, err := c.social.Status(ctx, me.ID, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "  %d\t%s\t%s\n", u.ID, u.Nombre, state)
		}
		return nil

	case "profile":
		nombre := fs.String("nombre", "", "new display name")
		bio := fs.String("bio", "", "new bio")
		ubicacion := fs.String("ubicacion", "", "new location")
		if err := fs.Parse(args); err != nil {
			return err
		}
		me, err := c.session(ctx)
		if err != nil {
			return err
		}
		if *nombre != "" || *bio != "" || *ubicacion != "" {
			current, err := c.profiles.Profile(ctx, *me)
			if err != nil {
				return err
			}
			detail := models.ProfileDetail{Nombre: *nombre, Bio: current.Bio, Ubicacion: current.Ubicacion}
			if *bio != "" {
				detail.Bio = *bio
			}
			if *ubicacion != "" {
				detail.Ubicacion = *ubicacion
			}
			if me, err = c.profiles.SaveProfile(ctx, me, detail); err != nil {
				return err
			}
		}
		p, err := c.profiles.Profile(ctx, *me)
		if err != nil {
			return err
		}
		favs := c.client.FavoritesByUser(ctx, me.ID)
		reviews := c.client.ReviewsByUser(ctx, me.ID)
		fmt.Fprintf(c.out, "%s\n%s\n📍 %s\nfavoritos: %d  reseñas: %d\n", p.Nombre, p.Bio, p.Ubicacion, len(favs), len(reviews))
		return nil

	case "feed", "like", "comment":
		return c.feedCommand(ctx, fs, cmd, args)

	case "note-add":
		placeID := fs.Int("place", 0, "place id")
		link := fs.String("url", "", "link to pin")
		note := fs.String("note", "", "free-text note")
		if err := fs.Parse(args); err != nil {
			return err
		}
		me, err := c.session(ctx)
		if err != nil {
			return err
		}
		if _, err := c.notes.AddNote(ctx, me.ID, *placeID, *link, *note); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Nota guardada")
		return nil

	case "notes":
		placeID := fs.Int("place", 0, "place id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		me, err := c.session(ctx)
		if err != nil {
			return err
		}
		notes, err := c.notes.Notes(ctx, me.ID, *placeID)
		if err != nil {
			return err
		}
		for _, n := range notes {
			fmt.Fprintf(c.out, "%s\t%s\t%s\n", n.ID, n.URL, n.Note)
		}
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

// session returns the logged-in user or ErrNoSession.
func (c *cli) session(ctx context.Context) (*models.Usuario, error) {
	user, err := c.client.GetUserInfo(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrNoSession
	}
	return user, nil
}

func (c *cli) relation(ctx context.Context, fs *flag.FlagSet, cmd string, args []string) error {
	other := fs.Int("user", 0, "the other user's id")
	fs.IntVar(other, "to", 0, "recipient (friend-request)")
	fs.IntVar(other, "from", 0, "sender (friend-accept, friend-reject)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	me, err := c.session(ctx)
	if err != nil {
		return err
	}
	switch cmd {
	case "friend-request":
		_, err = c.social.SendRequest(ctx, me.ID, *other)
		if err == nil {
			fmt.Fprintln(c.out, "Solicitud enviada")
		}
	case "friend-accept":
		_, err = c.social.AcceptRequest(ctx, me.ID, *other)
		if err == nil {
			fmt.Fprintln(c.out, "Ahora son amigos")
		}
	case "friend-reject":
		err = c.social.RejectRequest(ctx, me.ID, *other)
		if err == nil {
			fmt.Fprintln(c.out, "Solicitud rechazada")
		}
	default:
		err = c.social.RemoveRelation(ctx, me.ID, *other)
		if err == nil {
			fmt.Fprintln(c.out, "Relación eliminada")
		}
	}
	return err
}

func (c *cli) feedCommand(ctx context.Context, fs *flag.FlagSet, cmd string, args []string) error {
	postID := fs.String("post", "", "post id")
	text := fs.String("text", "", "comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	me, err := c.session(ctx)
	if err != nil {
		return err
	}

	if cmd != "feed" {
		var post *models.FeedPost
		for i := range seedFeed {
			if seedFeed[i].ID == *postID {
				post = &seedFeed[i]
			}
		}
		if post == nil {
			return errors.ErrNotFound
		}
		if cmd == "like" {
			_, err = c.feed.ToggleLike(ctx, me.ID, *post)
		} else {
			_, err = c.feed.AddComment(ctx, me.ID, *post, me.Nombre, *text)
		}
		if err != nil {
			return err
		}
	}

	overlay, err := c.feed.Overlay(ctx, me.ID)
	if err != nil {
		return err
	}
	for _, p := range services.MergeFeed(seedFeed, overlay) {
		heart := "♡"
		if p.Liked {
			heart = "♥"
		}
		fmt.Fprintf(c.out, "[%s] %s: %s\n  %s %d\n", p.ID, p.Autor, p.Texto, heart, p.Likes)
		for _, cm := range p.Comentarios {
			fmt.Fprintf(c.out, "    %s: %s\n", cm.Autor, cm.Texto)
		}
	}
	return nil
}

func (c *cli) printAuth(res services.AuthResult) error {
	if !res.Success {
		return errors.Backend(res.Message, 0)
	}
	fmt.Fprintf(c.out, "Bienvenido, %s\n", res.Usuario.Nombre)
	return nil
}

func (c *cli) printUsers(users []models.Usuario) {
	for _, u := range users {
		fmt.Fprintf(c.out, "  %d\t%s\t%s\n", u.ID, u.Nombre, u.Email)
	}
}
