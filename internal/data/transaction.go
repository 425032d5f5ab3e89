package data

import (
	"context"

	"Vidtube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// 它会为这个函数提供能在事务中工作的 Repositories。
	Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
type TransactionalRepositories struct {
	UserRepo     repository.UserRepository
	VideoRepo    repository.VideoRepository
	CommentRepo  repository.CommentRepository
	LikeRepo     repository.LikeRepository
	PlaylistRepo repository.PlaylistRepository
	TweetRepo    repository.TweetRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db    *gorm.DB
	repos TransactionalRepositories
}

// NewUnitOfWork 创建一个新的、基于GORM的"工作单元"。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(db *gorm.DB, repos TransactionalRepositories) UnitOfWork {
	return &gormUnitOfWork{
		db:    db,
		repos: repos,
	}
}

// 契约：fn func(repos *TransactionalRepositories) error
// 返回error，gorm回滚；返回nil，gorm提交
func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 临时创建"一次性"的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			UserRepo:     u.repos.UserRepo.WithTx(tx),
			VideoRepo:    u.repos.VideoRepo.WithTx(tx),
			CommentRepo:  u.repos.CommentRepo.WithTx(tx),
			LikeRepo:     u.repos.LikeRepo.WithTx(tx),
			PlaylistRepo: u.repos.PlaylistRepo.WithTx(tx),
			TweetRepo:    u.repos.TweetRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
