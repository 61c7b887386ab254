package links

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CheckSite validates internal hrefs in a built mkdocs site directory.
// Every <a href> that is not external or an in-page fragment must
// resolve to a file within the site tree.
func CheckSite(siteDir string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(siteDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		result.Pages++

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open page %s: %w", rel, err)
		}
		doc, err := goquery.NewDocumentFromReader(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse page %s: %w", rel, err)
		}

		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if href == "" || strings.HasPrefix(href, "#") {
				return
			}
			result.Links++
			if isExternal(href) {
				result.External = append(result.External, Link{Page: rel, Dest: href, External: true})
				return
			}
			if issue := checkSiteHref(siteDir, rel, href); issue != nil {
				result.Issues = append(result.Issues, *issue)
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func checkSiteHref(siteDir, page, href string) *Issue {
	dest, _, _ := strings.Cut(href, "#")
	dest, _, _ = strings.Cut(dest, "?")
	if dest == "" {
		return nil
	}

	var target string
	if strings.HasPrefix(dest, "/") {
		target = strings.TrimPrefix(dest, "/")
	} else {
		target = filepath.ToSlash(filepath.Join(filepath.Dir(page), dest))
	}
	if strings.HasPrefix(target, "../") {
		return &Issue{Page: page, Dest: href, Message: "target escapes the site directory"}
	}

	full := filepath.Join(siteDir, filepath.FromSlash(target))
	// pretty URLs end in a directory; mkdocs emits index.html inside
	if target == "" || strings.HasSuffix(dest, "/") {
		full = filepath.Join(full, "index.html")
	}
	if info, err := os.Stat(full); err == nil {
		if info.IsDir() {
			if _, err := os.Stat(filepath.Join(full, "index.html")); err == nil {
				return nil
			}
			return &Issue{Page: page, Dest: href, Message: "directory target has no index.html"}
		}
		return nil
	}
	return &Issue{Page: page, Dest: href, Message: "target does not exist"}
}
