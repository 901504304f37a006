// Package googlebooks 封装Google Books图书信息查询
//
// 编目导入时按ISBN拉取书名、作者、简介等元数据,
// 外部接口调用包在熔断器里,接口故障时快速失败不拖垮本服务
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// ErrServiceUnavailable 外部接口熔断中
var ErrServiceUnavailable = apperrors.New(apperrors.ErrCodeExternalError, "图书信息服务暂不可用,请稍后重试")

// BookInfo 查询结果
type BookInfo struct {
	Title           string
	Authors         []string
	Publisher       string
	PublicationYear string
	Description     string
	Categories      []string
	CoverImageURL   string
	ISBN            string
}

// Client Google Books客户端
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient 创建客户端
func NewClient(cfg config.GoogleBooksConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cb := circuitbreaker.NewCircuitBreaker("google-books", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		if metrics.CircuitBreakerState != nil {
			metrics.SetGaugeVec(metrics.CircuitBreakerState,
				map[string]string{"name": name}, float64(to))
		}
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

// FetchByISBN 按ISBN查询图书信息
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*BookInfo, error) {
	var info *BookInfo

	err := c.breaker.Execute(func() error {
		fetched, err := c.fetch(ctx, isbn)
		if err != nil {
			return err
		}
		info = fetched
		return nil
	})

	if err == circuitbreaker.ErrOpenState {
		return nil, ErrServiceUnavailable
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// volumesResponse Google Books API响应结构(只取用到的字段)
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *Client) fetch(ctx context.Context, isbn string) (*BookInfo, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "构造请求失败")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "调用Google Books失败")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.ErrCodeExternalError,
			"Google Books返回异常状态: %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Wrap(err, "解析响应失败")
	}

	if body.TotalItems == 0 || len(body.Items) == 0 {
		return nil, book.ErrBookNotFound
	}

	v := body.Items[0].VolumeInfo

	// publishedDate可能是"2015"或"2015-03-24",只取年份
	year := v.PublishedDate
	if len(year) > 4 {
		year = year[:4]
	}

	return &BookInfo{
		Title:           v.Title,
		Authors:         v.Authors,
		Publisher:       v.Publisher,
		PublicationYear: year,
		Description:     v.Description,
		Categories:      v.Categories,
		CoverImageURL:   v.ImageLinks.Thumbnail,
		ISBN:            isbn,
	}, nil
}
