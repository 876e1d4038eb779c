// Package main decodes a serialized element or document stream and prints
// what it contains. Useful when a file fails to load.
package main

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

var CLI struct {
	Input  string `arg:"" type:"existingfile" help:"Serialized document, element list or single element"`
	Points bool   `name:"points" help:"Print every stroke sample"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dump_elements"),
		kong.Description("Print the content of a serialized element stream"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run(CLI.Input, CLI.Points))
}

func run(path string, points bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	in, err := serial.NewObjectInputStream(data)
	if err != nil {
		return err
	}
	name, err := in.PeekObjectName()
	if err != nil {
		return err
	}

	switch name {
	case "Document":
		doc, err := document.ReadDocument(in)
		if err != nil {
			return describe(err)
		}
		fmt.Printf("Document %q, %d pages\n", doc.Title, doc.PageCount())
		for i, p := range doc.Pages() {
			fmt.Printf("page %d  %.2f x %.2f  %s\n", i+1, p.Width, p.Height, p.Background.Kind)
			for _, l := range p.Layers() {
				fmt.Printf("  layer %q visible=%t\n", l.Name, l.Visible)
				for _, e := range l.Elements() {
					dump(e, "    ", points)
				}
			}
		}
	case "Elements":
		elems, err := element.ReadElements(in)
		if err != nil {
			return describe(err)
		}
		fmt.Printf("%d elements\n", len(elems))
		for _, e := range elems {
			dump(e, "  ", points)
		}
	default:
		e, err := element.ReadElement(in)
		if err != nil {
			return describe(err)
		}
		dump(e, "", points)
	}
	if !in.EOF() {
		fmt.Printf("warning: %d trailing bytes\n", in.Remaining())
	}
	return nil
}

func describe(err error) error {
	var fe *serial.FieldError
	if errors.As(err, &fe) {
		return fmt.Errorf("decode failed at offset %d: %w", fe.Offset, err)
	}
	return err
}

func dump(e element.Element, indent string, points bool) {
	r := e.BoundingRect()
	fmt.Printf("%s%s %s bounds=(%.2f, %.2f, %.2f, %.2f)\n", indent, e.Type(), e.Color(), r.X, r.Y, r.Width, r.Height)
	indent += "  "

	switch e := e.(type) {
	case *element.Stroke:
		fmt.Printf("%swidth=%.2f tool=%s cap=%s fill=%d samples=%d pressure=%t\n",
			indent, e.LineWidth(), e.ToolType(), e.CapStyle(), e.Fill(), e.PointCount(), e.HasPressure())
		if d := e.Dashes(); len(d) > 0 {
			fmt.Printf("%sdashes=%v\n", indent, d)
		}
		if a := e.AudioFilename(); a != "" {
			fmt.Printf("%saudio=%s @%d\n", indent, a, e.Timestamp())
		}
		if points {
			for i, p := range e.Points() {
				fmt.Printf("%s%4d  %.3f %.3f %.3f\n", indent, i, p.X, p.Y, p.Z)
			}
		}
	case *element.Text:
		f := e.Font()
		fmt.Printf("%sfont=%s %.1f text=%q\n", indent, f.Name, f.Size, e.Text())
	case *element.TexImage:
		fmt.Printf("%ssource=%q %s\n", indent, e.Source(), imageInfo(e.DecodeConfig()))
	case *element.Image:
		fmt.Printf("%s%s\n", indent, imageInfo(e.DecodeConfig()))
	}
}

func imageInfo(cfg image.Config, format string, err error) string {
	if err != nil {
		return "undecodable image: " + err.Error()
	}
	return fmt.Sprintf("%s %dx%d", format, cfg.Width, cfg.Height)
}
