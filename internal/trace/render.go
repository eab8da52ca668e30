package trace

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dominikbraun/graph/draw"
	"github.com/goccy/go-graphviz"
)

// WriteDOT writes the menu graph in Graphviz DOT syntax.
func (r *Recorder) WriteDOT(w io.Writer) error {
	return errors.Wrap(draw.DOT(r.g, w), "trace: write dot")
}

// RenderSVG lays the graph out and writes it as SVG.
func (r *Recorder) RenderSVG(ctx context.Context, w io.Writer) error {
	return r.render(ctx, graphviz.SVG, w)
}

// RenderPNG lays the graph out and writes it as PNG.
func (r *Recorder) RenderPNG(ctx context.Context, w io.Writer) error {
	return r.render(ctx, graphviz.PNG, w)
}

// WriteFile picks the output format from the file extension: .svg, .png or,
// for anything else, DOT.
func (r *Recorder) WriteFile(ctx context.Context, w io.Writer, name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		return r.RenderSVG(ctx, w)
	case ".png":
		return r.RenderPNG(ctx, w)
	default:
		return r.WriteDOT(w)
	}
}

func (r *Recorder) render(ctx context.Context, format graphviz.Format, w io.Writer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(err, "trace: create graphviz instance")
	}
	defer gv.Close()

	gvGraph, err := gv.Graph()
	if err != nil {
		return errors.Wrap(err, "trace: create graphviz graph")
	}
	defer gvGraph.Close()

	adjacencyMap, err := r.g.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "trace: get adjacency map")
	}

	gvNodes := make(map[string]*graphviz.Node, len(adjacencyMap))
	for _, title := range sortedVertices(adjacencyMap) {
		node, err := gvGraph.CreateNodeByName(fmt.Sprintf("m%d", len(gvNodes)))
		if err != nil {
			return errors.Wrapf(err, "trace: create node %q", title)
		}
		node.SetLabel(fmt.Sprintf("%s (%d)", title, r.visits[title]))
		node.SetShape("box")
		gvNodes[title] = node
	}

	for _, source := range sortedVertices(adjacencyMap) {
		for _, target := range sortedVertices(adjacencyMap[source]) {
			edge, err := gvGraph.CreateEdgeByName("", gvNodes[source], gvNodes[target])
			if err != nil {
				return errors.Wrapf(err, "trace: create edge %q -> %q", source, target)
			}
			edge.SetLabel(joinKeys(r.keys[[2]string{source, target}]))
		}
	}

	return errors.Wrap(gv.Render(ctx, gvGraph, format, w), "trace: render")
}

func sortedVertices[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
