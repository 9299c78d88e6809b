package kpcc

// ArticleType classifies an article. Many things the API calls articles are
// not stories; the full set is kept so any article decodes.
type ArticleType string

const (
	ArticleAbstract        ArticleType = "abstract"
	ArticleNewsStory       ArticleType = "news_story"
	ArticleBlogEntry       ArticleType = "blog_entry"
	ArticleEvent           ArticleType = "event"
	ArticleProgram         ArticleType = "kpcc_program"
	ArticlePIJQuery        ArticleType = "pij_query"
	ArticleShowEpisode     ArticleType = "show_episode"
	ArticleShowSegment     ArticleType = "show_segment"
	ArticleContentShell    ArticleType = "content_shell"
	ArticleExternalEpisode ArticleType = "external_episode"
	ArticleExternalProgram ArticleType = "external_program"
	ArticleExternalSegment ArticleType = "external_segment"
)

var articleTypes = []ArticleType{
	ArticleAbstract, ArticleNewsStory, ArticleBlogEntry, ArticleEvent,
	ArticleProgram, ArticlePIJQuery, ArticleShowEpisode, ArticleShowSegment,
	ArticleContentShell, ArticleExternalEpisode, ArticleExternalProgram,
	ArticleExternalSegment,
}

// UnmarshalText rejects unknown article types.
func (t *ArticleType) UnmarshalText(text []byte) error {
	return unmarshalEnum(t, text, "article type", articleTypes...)
}

// Article is a story, blog entry, segment or other piece of content.
type Article struct {
	ID           string        `json:"id"`
	Type         ArticleType   `json:"type,omitempty"`
	Title        string        `json:"title,omitempty"`
	ShortTitle   string        `json:"short_title,omitempty"`
	Byline       string        `json:"byline,omitempty"`
	PublishedAt  Timestamp     `json:"published_at,omitzero"`
	UpdatedAt    Timestamp     `json:"updated_at,omitzero"`
	Teaser       string        `json:"teaser,omitempty"`
	Body         string        `json:"body,omitempty"`
	PublicURL    string        `json:"public_url,omitempty"`
	Category     *Category     `json:"category,omitempty"`
	Assets       []Asset       `json:"assets,omitempty"`
	Audio        []Audio       `json:"audio,omitempty"`
	Attributions []Attribution `json:"attributions,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
}

func (Article) listItem() ListType { return ListTypeArticle }

// Equal reports whether a and other are the same article.
func (a Article) Equal(other Article) bool {
	return a.ID == other.ID
}

// DisplayTitle prefers the short title.
func (a Article) DisplayTitle() string {
	if a.ShortTitle != "" {
		return a.ShortTitle
	}
	return a.Title
}

// Category is an article category. Categories are keyed by slug.
type Category struct {
	ID        int    `json:"id,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Title     string `json:"title,omitempty"`
	PublicURL string `json:"public_url,omitempty"`
}

// Equal reports whether c and other share a slug.
func (c Category) Equal(other Category) bool {
	return c.Slug == other.Slug
}
