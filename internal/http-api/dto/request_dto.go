package dto

// CreateBookRequestRequest: payload for asking for a book to be added.
// Author and genres are comma-separated lists.
type CreateBookRequestRequest struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Series   string `json:"series" form:"series"`
	Author   string `json:"author" form:"author" binding:"required"`
	Genres   string `json:"genres" form:"genres" binding:"required"`
	Language string `json:"language" form:"language" binding:"required"`
	ISBN     int64  `json:"isbn" form:"isbn"`
}

// ApproveBookRequestRequest: catalogue fields an admin supplies when
// approving a request. List fields are comma-separated.
type ApproveBookRequestRequest struct {
	Description      string `json:"description" form:"description"`
	Genres           string `json:"genres" form:"genres"`
	Characters       string `json:"characters" form:"characters"`
	Triggers         string `json:"triggers" form:"triggers"`
	Awards           string `json:"awards" form:"awards"`
	BookFormat       string `json:"bookFormat" form:"bookFormat"`
	Edition          string `json:"edition" form:"edition"`
	Pages            int    `json:"pages" form:"pages"`
	Publisher        string `json:"publisher" form:"publisher"`
	PublishDate      string `json:"publishDate" form:"publishDate"`
	FirstPublishDate string `json:"firstPublishDate" form:"firstPublishDate"`
	CoverImg         string `json:"coverImg" form:"coverImg"`
	Price            int    `json:"price" form:"price"`
	ISBN             int64  `json:"isbn" form:"isbn"`
}
