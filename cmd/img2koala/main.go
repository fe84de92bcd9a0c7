package main

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	koala "github.com/abbrev/c64koala2ppm"
)

func outputName(in, out string) string {
	if out != "" {
		return out
	}
	if i := strings.LastIndexByte(in, '.'); i > 0 {
		in = in[:i]
	}
	return in + ".koa"
}

func encode(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	in, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer in.Close()

	m, _, err := image.Decode(in)
	if err != nil {
		return cli.Exit(err, 1)
	}

	out, err := os.Create(outputName(c.Args().First(), c.String("output")))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer out.Close()

	if err := koala.Encode(out, m); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("img2koala: ")

	app := cli.NewApp()

	app.Name = "img2koala"
	app.Usage = "convert a 160x200 image to Commodore 64 KoalaPaint format"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write output to `FILE` instead of deriving it",
		},
	}

	app.Action = encode

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
