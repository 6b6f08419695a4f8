package service

import (
	"context"
	"errors"
	"strings"

	"VidTube/internal/apperr"
	"VidTube/internal/auth"
	"VidTube/internal/dto"
	"VidTube/internal/model"
	"VidTube/internal/repository"
	"VidTube/pkg/logger"
	"VidTube/pkg/storage"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// TokenPair 一次签发的访问令牌+刷新令牌
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput 注册入参，AvatarPath/CoverPath是multer落盘后的本地临时文件
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	AvatarPath string
	CoverPath  string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	// Login 用户名或邮箱二选一，成功返回脱敏前的用户和一对令牌
	Login(ctx context.Context, username, email, password string) (*model.User, TokenPair, error)
	// Refresh 校验并轮换刷新令牌，旧值随即作废
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Logout 清空服务端存的刷新令牌，之后任何refresh都会失败
	Logout(ctx context.Context, userID uint64) error
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
	GetByID(ctx context.Context, userID uint64) (*model.User, error)
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	// GetChannelProfile 频道主页聚合，viewerID为0表示未登录
	GetChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileResponse, error)
	GetWatchHistory(ctx context.Context, userID uint64) ([]model.Video, error)
}

type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	media    storage.MediaStore
	tokens   *auth.TokenIssuer
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, media storage.MediaStore, tokens *auth.TokenIssuer) UserService {
	return &userService{
		userRepo: userRepo,
		subRepo:  subRepo,
		media:    media,
		tokens:   tokens,
	}
}

// isDuplicateKey MySQL错误号1062就是"Duplicate entry"
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// 注册流程：1、查重 2、上传头像（必填）和封面（可选） 3、落库
// 落库失败时必须把已上传的媒体资源删干净再返回错误
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	// 先查重，给出友好的错误；唯一索引是并发兜底
	if _, err := s.userRepo.FindByUsernameOrEmail(username, input.Email); err == nil {
		return nil, apperr.BadRequest("用户名或邮箱已被注册")
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.media.Upload(ctx, input.AvatarPath)
	if err != nil {
		return nil, apperr.BadRequest("头像上传失败")
	}

	var cover storage.Asset
	if input.CoverPath != "" {
		cover, err = s.media.Upload(ctx, input.CoverPath)
		if err != nil {
			// 封面失败连头像一起回滚
			s.cleanupAsset(ctx, avatar.Key)
			return nil, apperr.BadRequest("封面上传失败")
		}
	}

	newUser := &model.User{
		Username:  username,
		Email:     input.Email,
		FullName:  input.FullName,
		Password:  hashedPassword,
		AvatarURL: avatar.URL,
		AvatarKey: avatar.Key,
		CoverURL:  cover.URL,
		CoverKey:  cover.Key,
	}

	if err := s.userRepo.Create(newUser); err != nil {
		// 创建失败，已上传的资源全部回滚
		s.cleanupAsset(ctx, avatar.Key)
		s.cleanupAsset(ctx, cover.Key)
		if isDuplicateKey(err) {
			return nil, apperr.BadRequest("用户名或邮箱已被注册")
		}
		return nil, err
	}

	return newUser, nil
}

// cleanupAsset 尽力而为的媒体清理，失败只记日志不向上传播
func (s *userService) cleanupAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Delete(ctx, key); err != nil {
		logger.Log.WithError(err).WithField("asset_key", key).Warn("媒体资源清理失败")
	}
}

// 登录流程：1、找用户 2、比对密码 3、签发令牌对并持久化刷新令牌
func (s *userService) Login(ctx context.Context, username, email, password string) (*model.User, TokenPair, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(strings.ToLower(username), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, apperr.BadRequest("该用户名或邮箱不存在")
		}
		return nil, TokenPair{}, err
	}

	if !auth.VerifyPassword(user.Password, password) {
		return nil, TokenPair{}, apperr.Unauthorized("用户名或密码错误")
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// issueTokenPair 签发一对令牌，并把刷新令牌覆盖写到用户记录上（轮换）
func (s *userService) issueTokenPair(user *model.User) (TokenPair, error) {
	accessToken, err := s.tokens.NewAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.tokens.NewRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.userRepo.Updates(user.ID, map[string]interface{}{"refresh_token": refreshToken}); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// 刷新流程：令牌本身有效 + 和库里存的完全一致，二者缺一不可
// 精确匹配挡住的是已经被轮换掉的旧令牌重放
func (s *userService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("无效的刷新令牌")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("无效的刷新令牌")
	}

	if refreshToken != user.RefreshToken {
		return TokenPair{}, apperr.Unauthorized("刷新令牌已过期或已被使用")
	}

	return s.issueTokenPair(user)
}

func (s *userService) Logout(ctx context.Context, userID uint64) error {
	return s.userRepo.Updates(userID, map[string]interface{}{"refresh_token": ""})
}

func (s *userService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperr.Unauthorized("用户不存在")
	}
	if !auth.VerifyPassword(user.Password, oldPassword) {
		return apperr.BadRequest("旧密码错误")
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.Updates(userID, map[string]interface{}{"password": hashed})
}

func (s *userService) GetByID(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error) {
	fields := map[string]interface{}{}
	if fullName != "" {
		fields["full_name"] = fullName
	}
	if email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil, apperr.BadRequest("没有需要更新的字段")
	}
	if err := s.userRepo.Updates(userID, fields); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.BadRequest("邮箱已被占用")
		}
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}

// 换头像：先传新的再删旧的，删旧失败不影响结果
func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.Unauthorized("用户不存在")
	}

	asset, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, apperr.BadRequest("头像上传失败")
	}

	err = s.userRepo.Updates(userID, map[string]interface{}{
		"avatar_url": asset.URL,
		"avatar_key": asset.Key,
	})
	if err != nil {
		s.cleanupAsset(ctx, asset.Key)
		return nil, err
	}

	// 被替换下来的旧资源要释放掉
	s.cleanupAsset(ctx, user.AvatarKey)
	return s.userRepo.FindByID(userID)
}

func (s *userService) UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.Unauthorized("用户不存在")
	}

	asset, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, apperr.BadRequest("封面上传失败")
	}

	err = s.userRepo.Updates(userID, map[string]interface{}{
		"cover_url": asset.URL,
		"cover_key": asset.Key,
	})
	if err != nil {
		s.cleanupAsset(ctx, asset.Key)
		return nil, err
	}

	s.cleanupAsset(ctx, user.CoverKey)
	return s.userRepo.FindByID(userID)
}

// 频道主页聚合：双向统计订阅边，再判断访问者是否已订阅
func (s *userService) GetChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("频道不存在")
		}
		return nil, err
	}

	subscribers, err := s.subRepo.CountSubscribers(user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscribedTo(user.ID)
	if err != nil {
		return nil, err
	}

	// 未登录的访问者一律视为未订阅
	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfileResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		Avatar:           user.AvatarURL,
		Cover:            user.CoverURL,
		SubscribersCount: subscribers,
		SubscribedCount:  subscribedTo,
		IsSubscribed:     isSubscribed,
	}, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID uint64) ([]model.Video, error) {
	return s.userRepo.FindWatchHistory(userID)
}
