package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/twpayne/go-kml"
)

const trackStyle = "track"

// KML returns a document with a folder of node placemarks and one folder of
// track placemarks per network.
func KML(nodes []pipeline.Node, nets []network.Network, segments int) (kml.Element, error) {
	edges, err := arcs(nodes, nets, segments)
	if err != nil {
		return nil, err
	}

	points := []kml.Element{kml.Name("Metropolitan areas")}
	for _, n := range nodes {
		points = append(points, kml.Placemark(
			kml.Name(n.Name),
			kml.Description(fmt.Sprintf("%s, population %d", n.Code, n.Population)),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: n.Location[0], Lat: n.Location[1]})),
		))
	}

	folders := make(map[network.Objective][]kml.Element, len(nets))
	for _, a := range edges {
		coords := make([]kml.Coordinate, len(a.line))
		for i, p := range a.line {
			coords[i] = kml.Coordinate{Lon: p[0], Lat: p[1]}
		}
		folders[a.objective] = append(folders[a.objective], kml.Placemark(
			kml.Name(fmt.Sprintf("%s-%s", nodes[a.u].Code, nodes[a.v].Code)),
			kml.StyleURL("#"+trackStyle),
			kml.LineString(kml.Tessellate(true), kml.Coordinates(coords...)),
		))
	}

	children := []kml.Element{
		kml.Name("railnet"),
		kml.SharedStyle(trackStyle,
			kml.LineStyle(
				kml.Color(color.Black),
				kml.Width(2),
			),
		),
		kml.Folder(points...),
	}
	for _, nw := range nets {
		f := append([]kml.Element{kml.Name(nw.Objective.String())}, folders[nw.Objective]...)
		children = append(children, kml.Folder(f...))
	}

	return kml.KML(kml.Document(children...)), nil
}

// WriteKML writes KML(nodes, nets, segments) to w.
func WriteKML(w io.Writer, nodes []pipeline.Node, nets []network.Network, segments int) error {
	k, err := KML(nodes, nets, segments)
	if err != nil {
		return err
	}
	if err := k.Write(w); err != nil {
		return fmt.Errorf("export: kml: %w", err)
	}

	return nil
}
