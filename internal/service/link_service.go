package service

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"
)

const (
	shortCodeLength      = 8
	shortCodeMaxAttempts = 5
)

var shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// LinkService 推广链接服务
type LinkService struct {
	repo         repository.LinkRepository
	partnerRepo  repository.PartnerRepository
	campaignRepo repository.CampaignRepository
	productRepo  repository.ProductRepository
}

// NewLinkService 创建推广链接服务
func NewLinkService(repo repository.LinkRepository, partnerRepo repository.PartnerRepository, campaignRepo repository.CampaignRepository, productRepo repository.ProductRepository) *LinkService {
	return &LinkService{
		repo:         repo,
		partnerRepo:  partnerRepo,
		campaignRepo: campaignRepo,
		productRepo:  productRepo,
	}
}

// CreateLinkInput 创建链接输入
type CreateLinkInput struct {
	PartnerID      uint
	CampaignID     *uint
	ProductID      *uint
	ShortCode      string
	Name           string
	DestinationURL string
	ExpiresAt      *time.Time
	CookieDays     *int
}

// Create 创建推广链接，未指定短码时随机生成
func (s *LinkService) Create(input CreateLinkInput) (*models.Link, error) {
	destination := strings.TrimSpace(input.DestinationURL)
	if !isHTTPURL(destination) || len(destination) > 2048 {
		return nil, ErrLinkInvalid
	}
	if input.CookieDays != nil && *input.CookieDays <= 0 {
		return nil, ErrLinkInvalid
	}

	partner, err := s.partnerRepo.GetByID(input.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	if partner.Status != constants.PartnerStatusActive {
		return nil, ErrPartnerInactive
	}
	if input.CampaignID != nil {
		campaign, err := s.campaignRepo.GetByID(*input.CampaignID)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return nil, ErrNotFound
		}
		if campaign.PartnerID != nil && *campaign.PartnerID != partner.ID {
			return nil, ErrLinkInvalid
		}
	}
	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(*input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrNotFound
		}
	}

	link := &models.Link{
		Name:           strings.TrimSpace(input.Name),
		PartnerID:      partner.ID,
		CampaignID:     input.CampaignID,
		ProductID:      input.ProductID,
		DestinationURL: destination,
		ExpiresAt:      utcPtr(input.ExpiresAt),
		CookieDays:     input.CookieDays,
	}

	code := strings.TrimSpace(input.ShortCode)
	if code != "" {
		if !shortCodePattern.MatchString(code) {
			return nil, ErrLinkInvalid
		}
		link.ShortCode = code
		if err := s.repo.Create(link); err != nil {
			if isUniqueViolation(err) {
				return nil, ErrShortCodeExists
			}
			return nil, err
		}
		return link, nil
	}

	for attempt := 0; attempt < shortCodeMaxAttempts; attempt++ {
		generated, err := generateShortCode()
		if err != nil {
			return nil, err
		}
		link.ID = 0
		link.ShortCode = generated
		err = s.repo.Create(link)
		if err == nil {
			return link, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, ErrShortCodeExists
}

// Get 获取推广链接
func (s *LinkService) Get(id uint) (*models.Link, error) {
	link, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}
	return link, nil
}

// List 推广链接列表
func (s *LinkService) List(filter repository.LinkListFilter) ([]models.Link, int64, error) {
	return s.repo.List(filter)
}

func generateShortCode() (string, error) {
	const alphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var builder strings.Builder
	builder.Grow(shortCodeLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < shortCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}
	return builder.String(), nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
