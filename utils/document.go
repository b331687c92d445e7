/*
 Copyright 2023 NanaFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var repeatSpace = regexp.MustCompile(`\s+`)
var htmlCharFilterRegexp = regexp.MustCompile(`</?[!\w:]+((\s+[\w-]+(\s*=\s*(?:\\*".*?"|'.*?'|[^'">\s]+))?)+\s*|\s*)/?>`)

func isHTML(contentType string) bool {
	switch strings.TrimPrefix(strings.ToLower(contentType), ".") {
	case "html", "htm", "xhtml", "webarchive":
		return true
	}
	return false
}

// ContentTrim strips markup from html content and collapses whitespace.
func ContentTrim(contentType, content string) string {
	if isHTML(contentType) {
		content = strings.ReplaceAll(content, "</p>", "</p>\n")
		content = strings.ReplaceAll(content, "</P>", "</P>\n")
		content = strings.ReplaceAll(content, "</div>", "</div>\n")
		content = strings.ReplaceAll(content, "</DIV>", "</DIV>\n")
		content = htmlCharFilterRegexp.ReplaceAllString(content, "")
	}
	content = repeatSpace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// ExtractText returns the title and plain text of a file. Html titles come
// from <title>, other files are titled by their base name.
func ExtractText(filename, content string) (string, string) {
	ext := filepath.Ext(filename)
	title := strings.TrimSuffix(filepath.Base(filename), ext)
	if !isHTML(ext) {
		return title, ContentTrim(ext, content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return title, ContentTrim(ext, content)
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		title = t
	}
	doc.Find("script,style,noscript").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return title, ContentTrim(ext, content)
	}
	return title, repeatSpace.ReplaceAllString(strings.TrimSpace(body.Text()), " ")
}

// Snippet cuts the first m characters of content.
func Snippet(content string, m int) string {
	runes := []rune(content)
	if len(runes) > m {
		return string(runes[:m]) + "..."
	}
	return content
}
