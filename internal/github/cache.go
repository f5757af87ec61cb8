package github

import (
	"net/http"
	"sync"
)

// cachedPage is the last 200 response seen for a URL. The Link header is
// kept with the body since a 304 need not repeat it, and without it a
// revalidated commits page would look like the last one.
type cachedPage struct {
	etag string
	link string
	body []byte
}

// pageCache revalidates GETs with If-None-Match. A 304 does not count
// against the unauthenticated quota, so reloading an unchanged history is
// free.
type pageCache struct {
	mu    sync.Mutex
	pages map[string]cachedPage
}

func newPageCache() *pageCache {
	return &pageCache{pages: make(map[string]cachedPage)}
}

func (pc *pageCache) lookup(url string) (cachedPage, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	page, ok := pc.pages[url]
	return page, ok
}

func (pc *pageCache) store(url string, header http.Header, body []byte) {
	etag := header.Get("ETag")
	if etag == "" {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.pages[url] = cachedPage{etag: etag, link: header.Get("Link"), body: body}
}

// revalidated rebuilds the headers of a 304 answer, restoring the cached
// Link header when the server left it out
func (page cachedPage) revalidated(header http.Header) http.Header {
	header = header.Clone()
	if header.Get("Link") == "" && page.link != "" {
		header.Set("Link", page.link)
	}
	return header
}
