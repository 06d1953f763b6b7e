package pdf

// Link is a URI link annotation.
type Link struct {
	URI  string
	Rect [4]float64 // llx, lly, urx, ury in points
}

// Links returns the URI link annotations of the page in order.
func (p *Page) Links() ([]Link, error) {
	annots, err := p.doc.get(p.dict, "Annots")
	if err != nil {
		return nil, err
	}
	var links []Link
	for _, a := range annots.Array {
		ao, err := p.doc.Resolve(a)
		if err != nil {
			return nil, err
		}
		if sub, _ := ao.Dict.Name("Subtype"); sub != "Link" {
			continue
		}
		action, err := p.doc.dict(ao.Dict, "A")
		if err != nil {
			return nil, err
		}
		if s, _ := action.Name("S"); s != "URI" {
			continue
		}
		uri, err := p.doc.get(action, "URI")
		if err != nil {
			return nil, err
		}
		l := Link{URI: string(uri.Str)}
		if r, err := p.doc.get(ao.Dict, "Rect"); err == nil && len(r.Array) == 4 {
			for i, v := range r.Array {
				l.Rect[i], _ = v.Number()
			}
		}
		links = append(links, l)
	}
	return links, nil
}
