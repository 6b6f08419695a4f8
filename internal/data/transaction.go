package data

import (
	"VidTube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 把一个函数包裹在数据库事务中执行，
// 并为它提供绑定了同一个事务的Repositories
type UnitOfWork interface {
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有需要在同一个事务中操作的Repository
// 目前只有“删评论要级联删它的点赞”这一个跨表不变量用到
type TransactionalRepositories struct {
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
}

type gormUnitOfWork struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

// NewUnitOfWork 接收的是原始的、非事务的repositories
func NewUnitOfWork(db *gorm.DB, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

// Execute fn返回error则整个事务回滚，返回nil则提交
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		transactionalRepos := &TransactionalRepositories{
			CommentRepo: u.commentRepo.WithTx(tx),
			LikeRepo:    u.likeRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
