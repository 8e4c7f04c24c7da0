package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/MrRaffo/smallsprite"
	"github.com/MrRaffo/smallsprite/project"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultFPS = 60

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(c *cli.Context) error {
	if c.NArg() != 1 || strings.HasPrefix(c.Args().First(), "-") {
		cli.ShowAppHelp(c) //nolint:errcheck
		return cli.Exit("", 1)
	}
	file := c.Args().First()

	fps := c.Int("fps")
	if fps < 1 {
		return cli.Exit(fmt.Sprintf("invalid frame rate %d", fps), 1)
	}

	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer logger.Sync() //nolint:errcheck

	p, loaded := smallsprite.Open(file, logger)
	defer p.Free()
	if !loaded {
		logger.Info("created project", zap.String("file", file))
	}

	var lib *smallsprite.Library
	if path := c.String("library"); path != "" {
		if lib, err = smallsprite.NewLibrary(path, logger.Named("library")); err != nil {
			return cli.Exit(err, 1)
		}
		defer lib.Close()
	}

	in, closer, err := openScript(c.String("script"), logger.Named("script"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closer.Close()

	clock := newWallClock(fps)
	fb := newFrameBuffer()

	e := smallsprite.NewEditor(p, lib, logger.Named("editor"))
	e.FrameTime = clock.frame
	e.Run(in, clock, fb)

	logger.Info("editor stopped", zap.String("status", e.Status()))

	if path := c.String("frame"); path != "" {
		if err := fb.writePNG(path); err != nil {
			logger.Error("write frame", zap.String("file", path), zap.Error(err))
		}
	}

	return checkSave(p.Save(file), file, logger)
}

// checkSave turns the result of saving into the exit status. A partial write
// still leaves a loadable file so it only warns.
func checkSave(err error, file string, logger *zap.Logger) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, project.ErrPartialWrite):
		logger.Warn("possible errors writing file", zap.String("file", file), zap.Error(err))
		return nil
	default:
		return cli.Exit(err, 1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "smallsprite"
	app.Usage = "small indexed-color sprite and animation editor"
	app.Version = "0.3.0"
	app.ArgsUsage = "FILENAME"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "library",
			EnvVars: []string{"SMALLSPRITE_LIBRARY"},
			Usage:   "path to sprite library database",
		},
		&cli.StringFlag{
			Name:  "script",
			Value: "-",
			Usage: "read editor commands from `FILE`, - for stdin",
		},
		&cli.IntFlag{
			Name:    "fps",
			EnvVars: []string{"SMALLSPRITE_FPS"},
			Value:   defaultFPS,
			Usage:   "frames per second",
		},
		&cli.StringFlag{
			Name:  "frame",
			Usage: "write the last rendered frame as a PNG to `FILE`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = run

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
