// Command xmldomcat parses an XML document and prints a structural summary:
// element counts by local name, attribute counts, and the tree's maximum depth.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kwilk/xmldom"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "xmldomcat [file]",
		Short: "Parse an XML document and print a structural summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, log)
		},
	}

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("xmldomcat failed")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, log zerolog.Logger) error {
	var input []byte
	var err error

	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = readAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("xmldomcat: read input: %w", err)
	}

	doc := xmldom.New()
	if err := doc.Parse(input); err != nil {
		log.Error().Err(err).Msg("parse failed")
		return err
	}

	s := summarize(doc)
	fmt.Fprintf(cmd.OutOrStdout(), "elements: %d\n", s.elementCount)
	fmt.Fprintf(cmd.OutOrStdout(), "attributes: %d\n", s.attributeCount)
	fmt.Fprintf(cmd.OutOrStdout(), "max depth: %d\n", s.maxDepth)
	for name, count := range s.byLocalName {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", name, count)
	}
	log.Info().Int("elements", s.elementCount).Int("attributes", s.attributeCount).Msg("parsed")
	return nil
}

func readAll(f *os.File) ([]byte, error) {
	info, err := f.Stat()
	if err == nil && info.Size() > 0 {
		buf := make([]byte, info.Size())
		n, err := f.Read(buf)
		return buf[:n], err
	}
	var out []byte
	chunk := make([]byte, 4096)
	for {
		n, err := f.Read(chunk)
		out = append(out, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return out, nil
}

type summary struct {
	elementCount   int
	attributeCount int
	maxDepth       int
	byLocalName    map[string]int
}

func summarize(doc *xmldom.Document) summary {
	s := summary{byLocalName: make(map[string]int)}
	walk(doc.Tree(), 0, &s)
	return s
}

func walk(n *xmldom.Node, depth int, s *summary) {
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	if n.Kind() == xmldom.KindElement {
		s.elementCount++
		s.byLocalName[string(n.LocalName())]++
		for a := n.FirstAttr(); a != nil; a = a.NextSibling() {
			s.attributeCount++
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c, depth+1, s)
	}
}
