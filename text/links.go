package text

// Link is a rendered link's screen position and target.
type Link struct {
	Y         int
	URL, Name string
	index     int
}

// Links indexes rendered links by their vertical position.
type Links struct {
	links map[int]Link
}

func (l *Links) Add(y int, url, name string) {
	if l.links == nil {
		l.links = make(map[int]Link)
	}
	l.links[y] = Link{Y: y, URL: url, Name: name, index: len(l.links)}
}

// At returns the link on screen line y, if any.
func (l Links) At(y int) *Link {
	if v, ok := l.links[y]; ok {
		return &v
	}
	return nil
}

// Number returns the n-th link in render order.
func (l Links) Number(n int) *Link {
	for _, link := range l.links {
		if link.index == n {
			return &link
		}
	}
	return nil
}

func (l Links) Count() int {
	return len(l.links)
}
