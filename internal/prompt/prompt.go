// Package prompt collects the cities of a tour interactively.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tsp-genetic/internal/catalog"
	"tsp-genetic/internal/models"
)

const invalidNameMessage = "Invalid city name entered. Please choose from the available cities."

// ErrInputClosed is returned when input ends before every city was entered
var ErrInputClosed = errors.New("input ended before all cities were entered")

// ErrInvalidCount is returned for a city count outside [2, Max]
type ErrInvalidCount struct {
	Input string
	Max   int
}

func (e *ErrInvalidCount) Error() string {
	return fmt.Sprintf("Invalid number of cities. Please enter between 2 and %d", e.Max)
}

// Prompter reads answers line by line from in and writes prompts to out
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Collect asks for the number of cities and then for each name.
func (p *Prompter) Collect() ([]models.Point, error) {
	n, err := p.CityCount()
	if err != nil {
		return nil, err
	}
	return p.CityNames(n)
}

// CityCount reads the number of cities to visit. Values outside
// [2, catalog.Size()] are rejected without re-prompting.
func (p *Prompter) CityCount() (int, error) {
	limit := catalog.Size()
	fmt.Fprintf(p.out, "Enter the number of cities you want to visit (Max %d):\n", limit)

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 2 || n > limit {
		return 0, &ErrInvalidCount{Input: line, Max: limit}
	}
	return n, nil
}

// CityNames reads n city names. An unknown name is reported and the same
// slot is asked for again.
func (p *Prompter) CityNames(n int) ([]models.Point, error) {
	fmt.Fprintf(p.out, "Enter the names of the cities (Available cities: [%s]):\n",
		strings.Join(catalog.Names(), ", "))

	points := make([]models.Point, 0, n)
	for len(points) < n {
		fmt.Fprintf(p.out, "City %d: ", len(points)+1)

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}

		city, ok := catalog.Lookup(line)
		if !ok {
			fmt.Fprintln(p.out, invalidNameMessage)
			continue
		}
		points = append(points, city)
	}
	return points, nil
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}
