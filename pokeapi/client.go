package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GummyBear-w/poke-quiz-server/game"
)

const (
	POKEMON_COUNT      = 1010
	CANONICAL_LANGUAGE = "zh-Hant"
)

// Client turns the public PokeAPI into a question source: a random
// pokemon's official artwork is the prompt, its localized names are
// the accepted answers.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type pokemonResponse struct {
	Name    string `json:"name"`
	Species struct {
		URL string `json:"url"`
	} `json:"species"`
	Sprites struct {
		Other map[string]struct {
			FrontDefault string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
}

type speciesResponse struct {
	Names []struct {
		Name     string `json:"name"`
		Language struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"names"`
}

func (c *Client) GetQuestion(ctx context.Context) (game.Question, error) {
	id := rand.Intn(POKEMON_COUNT) + 1

	var pokemon pokemonResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v2/pokemon/%d", c.baseURL, id), &pokemon); err != nil {
		return game.Question{}, fmt.Errorf("fetch pokemon %d: %w", id, err)
	}

	var species speciesResponse
	if err := c.getJSON(ctx, pokemon.Species.URL, &species); err != nil {
		return game.Question{}, fmt.Errorf("fetch species for %s: %w", pokemon.Name, err)
	}

	canonical := pokemon.Name
	accepted := make([]string, 0, len(species.Names)+1)
	for _, n := range species.Names {
		if n.Language.Name == CANONICAL_LANGUAGE {
			canonical = n.Name
		}
		accepted = append(accepted, strings.ToLower(n.Name))
	}
	if canonical == pokemon.Name && len(species.Names) > 0 {
		canonical = species.Names[0].Name
	}
	accepted = append(accepted, strings.ToLower(pokemon.Name))

	imageURL := pokemon.Sprites.Other["official-artwork"].FrontDefault
	c.log.Debug().Int("id", id).Str("name", pokemon.Name).Msg("question fetched")

	return game.Question{
		ImageURL:        imageURL,
		CorrectAnswer:   canonical,
		AcceptedAnswers: accepted,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
