package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
)

const relNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

var reSlideName = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type xPresentation struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type xRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xSlide struct {
	Tree xSpTree `xml:"cSld>spTree"`
}

type xSpTree struct {
	Shapes []xShape        `xml:"sp"`
	Groups []xInner        `xml:"grpSp"`
	Frames []xGraphicFrame `xml:"graphicFrame"`
}

type xOff struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xShape struct {
	Off  *xOff   `xml:"spPr>xfrm>off"`
	Body *xInner `xml:"txBody"`
}

type xInner struct {
	Inner string `xml:",innerxml"`
}

type xGraphicFrame struct {
	Off  *xOff `xml:"xfrm>off"`
	Rows []struct {
		Cells []struct {
			HMerge bool   `xml:"hMerge,attr"`
			VMerge bool   `xml:"vMerge,attr"`
			Body   xInner `xml:"txBody"`
		} `xml:"tc"`
	} `xml:"graphic>graphicData>tbl>tr"`
}

func (e *Extractor) extractPPTX(ctx context.Context, p string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PPTX, Method: MethodPPTXShapes}

	zr, err := zip.OpenReader(p)
	if err != nil {
		return res, fmt.Errorf("open pptx: %w", err)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			e.logger.Warn("close pptx", "path", p, "error", cerr)
		}
	}()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	order, err := slideOrder(files)
	if err != nil {
		return res, err
	}
	if len(order) == 0 {
		return res, fmt.Errorf("pptx has no slides")
	}

	var lines []string
	for i, name := range order {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		slide, err := readSlide(files[name])
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		lines = append(lines, slide.flatten(i == 0, e.cfg.RowSnapEMU)...)
	}
	res.Pages = len(order)

	text, injected := InjectSignature(strings.Join(lines, "\n"), e.cfg.SignatureWindow)
	res.Text = text
	res.SignatureInjected = injected
	if injected {
		e.logger.Debug("report signature injected", "path", p)
	}
	return res, nil
}

// slideOrder follows the presentation's slide list, falling back to the
// numeric order of ppt/slides/slideN.xml entries.
func slideOrder(files map[string]*zip.File) ([]string, error) {
	if ordered := presentationOrder(files); len(ordered) > 0 {
		return ordered, nil
	}

	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for name := range files {
		m := reSlideName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("slide name %q: %w", name, err)
		}
		found = append(found, numbered{n: n, name: name})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out, nil
}

func presentationOrder(files map[string]*zip.File) []string {
	pf, ok := files["ppt/presentation.xml"]
	if !ok {
		return nil
	}
	rf, ok := files["ppt/_rels/presentation.xml.rels"]
	if !ok {
		return nil
	}
	var pres xPresentation
	if err := decodeZipXML(pf, &pres); err != nil {
		return nil
	}
	var rels xRelationships
	if err := decodeZipXML(rf, &rels); err != nil {
		return nil
	}
	targets := make(map[string]string, len(rels.Rels))
	for _, r := range rels.Rels {
		targets[r.ID] = r.Target
	}

	var out []string
	for _, id := range pres.SlideIDs {
		t, ok := targets[id.RID]
		if !ok {
			continue
		}
		name := path.Clean(path.Join("ppt", t))
		if strings.HasPrefix(t, "/") {
			name = strings.TrimPrefix(t, "/")
		}
		if _, ok := files[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func decodeZipXML(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

func readSlide(f *zip.File) (slideContent, error) {
	var x xSlide
	if err := decodeZipXML(f, &x); err != nil {
		return slideContent{}, fmt.Errorf("decode slide: %w", err)
	}

	var sc slideContent
	for _, g := range x.Tree.Groups {
		lines, err := paragraphLines(g.Inner)
		if err != nil {
			return sc, fmt.Errorf("group text: %w", err)
		}
		if lines = nonEmpty(lines); len(lines) > 0 {
			sc.headings = append(sc.headings, lines)
		}
	}
	for _, s := range x.Tree.Shapes {
		if s.Body == nil {
			continue
		}
		lines, err := paragraphLines(s.Body.Inner)
		if err != nil {
			return sc, fmt.Errorf("shape text: %w", err)
		}
		if len(nonEmpty(lines)) == 0 {
			continue
		}
		sh := shape{lines: trimBlankEdges(lines)}
		if s.Off != nil {
			sh.x, sh.y = s.Off.X, s.Off.Y
		}
		sc.shapes = append(sc.shapes, sh)
	}
	for _, gf := range x.Tree.Frames {
		if len(gf.Rows) == 0 {
			continue
		}
		rows := make([][]string, 0, len(gf.Rows))
		for _, r := range gf.Rows {
			cells := make([]string, 0, len(r.Cells))
			for _, c := range r.Cells {
				if c.HMerge || c.VMerge {
					continue
				}
				lines, err := paragraphLines(c.Body.Inner)
				if err != nil {
					return sc, fmt.Errorf("table cell: %w", err)
				}
				cells = append(cells, strings.Join(nonEmpty(lines), " "))
			}
			rows = append(rows, cells)
		}
		lines := flattenTable(rows)
		if len(nonEmpty(lines)) == 0 {
			continue
		}
		sh := shape{lines: lines}
		if gf.Off != nil {
			sh.x, sh.y = gf.Off.X, gf.Off.Y
		}
		sc.shapes = append(sc.shapes, sh)
	}
	return sc, nil
}

// paragraphLines walks DrawingML markup and returns one line per a:p, with
// a:br splitting a paragraph into several lines. Empty paragraphs are kept.
func paragraphLines(inner string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(inner))
	dec.Strict = false

	var (
		out    []string
		cur    strings.Builder
		inPara bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "br":
				if inPara {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					for _, l := range strings.Split(cur.String(), "\n") {
						out = append(out, strings.TrimSpace(l))
					}
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				cur.Write(t)
			}
		}
	}
	return out, nil
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
