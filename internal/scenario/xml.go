// Package scenario reads and writes grid path scenario files.
//
// A scenario file is the XML document exchanged with the planner: a map
// section (size, start, finish, grid rows, dynamic obstacles), optional
// search options and, for result files, a log section with the summary and
// the planned path. Coordinates in the file are 1-indexed; everything handed
// to the rest of the program is 0-indexed.
package scenario

import "encoding/xml"

// document mirrors the file layout. The root element name is not checked.
type document struct {
	Map     mapElem      `xml:"map"`
	Options *optionsElem `xml:"options"`
	Log     *logElem     `xml:"log"`
}

// outDocument is document with the root name fixed for writing.
type outDocument struct {
	XMLName xml.Name `xml:"root"`
	document
}

type mapElem struct {
	Width     *int           `xml:"width"`
	Height    *int           `xml:"height"`
	StartX    *int           `xml:"startx"`
	StartY    *int           `xml:"starty"`
	FinishX   *int           `xml:"finishx"`
	FinishY   *int           `xml:"finishy"`
	Rows      []string       `xml:"grid>row"`
	Obstacles []obstacleElem `xml:"dynamicobstacles>obstacle"`
}

type obstacleElem struct {
	ID     string      `xml:"id,attr,omitempty"`
	Points []pointElem `xml:"point"`
}

type pointElem struct {
	X    string `xml:"x,attr"`
	Y    string `xml:"y,attr"`
	Time string `xml:"time,attr"`
}

type optionsElem struct {
	HWeight *float64 `xml:"hweight"`
}

type logElem struct {
	Summary *summaryElem `xml:"summary"`
	Path    *pathElem    `xml:"path"`
}

type summaryElem struct {
	PathLength    string `xml:"pathlength,attr,omitempty"`
	NumberOfSteps string `xml:"numberofsteps,attr,omitempty"`
	SearchTime    string `xml:"searchtime,attr,omitempty"`
}

type pathElem struct {
	Points []pointElem `xml:"point"`
}
