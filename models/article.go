package models

import "gorm.io/gorm"

// Article 文章
type Article struct {
	gorm.Model
	Title    string `gorm:"size:200;not null" json:"title" binding:"required"`
	Content  string `gorm:"type:text" json:"content" binding:"required"`
	Preview  string `gorm:"size:500" json:"preview"`
	AuthorID uint   `gorm:"index" json:"author_id"`
}

// Comment 文章评论；评论本身也可以被点赞（作为 toggle 的 target）
type Comment struct {
	gorm.Model
	Content   string `gorm:"type:text;not null" json:"content" binding:"required"`
	UserID    uint   `gorm:"index" json:"user_id"`
	ArticleID uint   `gorm:"index" json:"article_id"`
}
