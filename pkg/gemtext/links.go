package gemtext

// Link is a hyperlink target collected while rendering a paragraph.
// Title is the link's title attribute, not the bracketed link text.
type Link struct {
	Destination string
	Title       string
}

// linkQueue holds the links of the currently open paragraph, in the order
// they were encountered.
type linkQueue struct {
	links []Link
}

func (q *linkQueue) push(link Link) {
	q.links = append(q.links, link)
}

func (q *linkQueue) len() int {
	return len(q.links)
}

// drain returns the queued links and leaves the queue empty.
func (q *linkQueue) drain() []Link {
	links := q.links
	q.links = nil
	return links
}
