// cmd/importsongs converts scraped music records into a song catalog the
// server can load with SONGS_FILE.
//
//	importsongs --in data/music.json --out data/songs.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "importsongs",
		Usage: "build a song catalog from scraped music records",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "raw records (JSON array)", EnvVars: []string{"IMPORT_IN"}, Required: true},
			&cli.StringFlag{Name: "out", Usage: "catalog to write; stdout when empty", EnvVars: []string{"SONGS_FILE"}},
			&cli.IntFlag{Name: "first-id", Usage: "id of the first imported song", Value: songs.FirstImportID},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	in, err := os.Open(c.String("in"))
	if err != nil {
		return err
	}
	defer in.Close()

	list, err := songs.Import(in, c.Int("first-id"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]songs.Song{"songs": list}); err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	log.Info().Int("songs", len(list)).Str("out", c.String("out")).Msg("catalog written")
	return nil
}
