package domain

import "fmt"

func articlesSchema() Schema {
	return Schema{
		Name:          "Articles",
		Key:           "articles",
		Label:         "Articles",
		Columns:       []string{"Title", "Author", "Section", "Month", "Page", "Link"},
		FilterColumns: []string{"Section", "Month", "Author"},
		SearchColumns: []string{"Title", "Author", "Section", "Month"},
		TitleColumn:   "Title",
		LinkColumn:    "Link",
	}
}

func judgementsSchema() Schema {
	return Schema{
		Name:          "Judgements",
		Key:           "judgements",
		Label:         "Judgements",
		Columns:       []string{"Title", "Reference", "Section", "Summary", "Month", "Link"},
		FilterColumns: []string{"Section", "Month"},
		SearchColumns: []string{"Title", "Reference", "Section", "Summary"},
		TitleColumn:   "Title",
		LinkColumn:    "Link",
	}
}

func newRecord(collection string, fields map[string]string) Record {
	return Record{
		Collection: collection,
		Title:      fields["Title"],
		Link:       fields["Link"],
		Fields:     fields,
	}
}

// numberedArticles builds n articles titled "Article 1".."Article n".
func numberedArticles(n int) *Collection {
	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, newRecord("Articles", map[string]string{
			"Title":   fmt.Sprintf("Article %d", i),
			"Section": fmt.Sprintf("%d", 100+i%3),
			"Link":    fmt.Sprintf("https://example.com/a/%d.pdf", i),
		}))
	}
	return &Collection{Schema: articlesSchema(), Records: records}
}

func sampleArticles() *Collection {
	return &Collection{
		Schema: articlesSchema(),
		Records: []Record{
			newRecord("Articles", map[string]string{
				"Title": "Board Meetings Explained", "Author": "A. Rao", "Section": "173",
				"Month": "January", "Page": "12", "Link": "https://example.com/a/1.pdf",
			}),
			newRecord("Articles", map[string]string{
				"Title": "Related Party Transactions", "Author": "B. Shah", "Section": "188",
				"Month": "February", "Link": "https://example.com/a/2.pdf",
			}),
			newRecord("Articles", map[string]string{
				"Title": "Independent Directors", "Author": "A. Rao", "Section": "149",
				"Month": "January",
			}),
			newRecord("Articles", map[string]string{
				"Title": "CSR Spending", "Section": "135",
				"Month": "March", "Link": "https://example.com/a/4.pdf",
			}),
		},
	}
}

func sampleJudgements() *Collection {
	return &Collection{
		Schema: judgementsSchema(),
		Records: []Record{
			newRecord("Judgements", map[string]string{
				"Title": "XYZ Ltd v. Registrar", "Reference": "NCLAT 12/2023", "Section": "188",
				"Summary": "Approval of related party contracts", "Link": "https://example.com/j/1.pdf",
			}),
			newRecord("Judgements", map[string]string{
				"Title": "ABC Ltd v. Union", "Reference": "SC 4/2022", "Section": "241",
				"Summary": "Oppression and mismanagement",
			}),
		},
	}
}
