package models

import "time"

type Article struct {
	ID         int       `db:"id"         json:"id"`
	Title      string    `db:"title"      json:"title"`
	Name       string    `db:"name"       json:"name"`
	Prefecture string    `db:"prefecture" json:"prefecture"`
	Content    string    `db:"content"    json:"content"`
	PostDate   time.Time `db:"post_date"  json:"post_date"`
	ImagePath  string    `db:"image_path" json:"image_path"`
}

// swagger:model SaveArticleRequest
type SaveArticleRequest struct {
	Title      string `json:"title"      example:"Autumn in Kyoto"`
	Name       string `json:"name"       example:"Hanako"`
	Prefecture string `json:"prefecture" example:"Kyoto"`
	Content    string `json:"content"    example:"The maple leaves turn red in November."`
	PostDate   string `json:"post_date"  example:"2026-08-29"`
	ImagePath  string `json:"image_path" example:"/img/kyoto.jpg"`
}

// ArticleSearchQuery carries the optional fuzzy-search filters; empty fields
// are not applied.
type ArticleSearchQuery struct {
	Title   string `json:"title"`
	Name    string `json:"name"`
	Content string `json:"content"`
}
