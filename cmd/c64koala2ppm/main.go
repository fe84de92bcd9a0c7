package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	koala "github.com/abbrev/c64koala2ppm"
	"github.com/abbrev/c64koala2ppm/palette"
	"github.com/abbrev/c64koala2ppm/ppm"
)

const licenseText = `c64koala2ppm, convert a Commodore 64 KoalaPaint image to Portable Pixmap

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.
`

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func convert(c *cli.Context) error {
	if c.Bool("license") {
		fmt.Fprint(c.App.ErrWriter, licenseText)
		return nil
	}

	if c.NArg() > 1 {
		cli.ShowAppHelp(c)
		return cli.Exit("too many filenames", 1)
	}

	saturation := c.Float64("saturation")
	if saturation < 0 {
		return cli.Exit("saturation must be >= 0", 1)
	}

	f, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, err := koala.Decode(f)
	if err != nil {
		if err != koala.ErrTruncated {
			return cli.Exit(err, 1)
		}
		log.Print("koala file is too short. Output may be corrupt.")
	}

	if err := ppm.Encode(c.App.Writer, m.Render(palette.New(saturation))); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("c64koala2ppm: ")

	app := cli.NewApp()

	app.Name = "c64koala2ppm"
	app.Usage = "convert a Commodore 64 KoalaPaint image to Portable Pixmap"
	app.ArgsUsage = "[FILE]"
	app.Version = "1.0.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		&cli.Float64Flag{
			Name:    "saturation",
			Aliases: []string{"s"},
			Value:   1.0,
			Usage:   "set the output saturation, must be >= 0",
		},
		&cli.BoolFlag{
			Name:    "license",
			Aliases: []string{"L"},
			Usage:   "show license information and exit",
		},
	}

	app.Action = convert

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
