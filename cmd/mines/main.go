package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	log = mines.Log

	columns int
	rows    int
	count   int
	seed    uint64
	logPath string
	debug   bool
)

func init() {
	flag.IntVar(&columns, "columns", mines.DefaultColumns, "board width")
	flag.IntVar(&rows, "rows", mines.DefaultRows, "board height")
	flag.IntVar(&count, "mines", mines.DefaultMines, "number of mines")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.StringVar(&logPath, "log", "", "also write logs to this file, rotated")
	flag.BoolVar(&debug, "debug", false, "log every move and mine placement")
}

func setupLogging() error {
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logPath == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	// the hook writes the file, keep the terminal for the board
	log.SetOutput(io.Discard)
	return nil
}

const usage = `commands:
  o X Y   reveal the cell at column X, row Y
  f X Y   toggle a flag
  g       print the board
`

// play reads commands from in until the game ends or input runs out.
func play(b *mines.Board, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, b.String())
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, line := range command.Split(scanner.Text()) {
			c, err := command.Parse(line)
			if err == nil {
				err = c.Apply(b)
			}
			if err != nil {
				fmt.Fprintf(out, "error: %s\n%s", err, usage)
				continue
			}
			log.WithField("command", c.String()).Debug("applied")
		}
		fmt.Fprint(out, b.String())

		switch b.State() {
		case mines.Won:
			fmt.Fprintln(out, "You Win!")
			return nil
		case mines.Lost:
			fmt.Fprintln(out, "You Lose!")
			return nil
		}
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	log.WithFields(logrus.Fields{
		"columns": columns,
		"rows":    rows,
		"mines":   count,
		"seed":    seed,
	}).Info("new game")

	b, err := mines.NewBoard(columns, rows, count, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.Fatal(err)
	}
	if err := b.Initialize(); err != nil {
		log.Fatal(err)
	}

	fmt.Print(usage)
	if err := play(b, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
