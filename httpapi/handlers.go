package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/search"
)

// gameView is the wire shape of a game. The embedding vector stays
// server-side.
type gameView struct {
	Id          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MinPlayers  int      `json:"minplayers"`
	MaxPlayers  int      `json:"maxplayers"`
	MinAge      int      `json:"minage"`
	PlayingTime int      `json:"playingtime"`
	Categories  []string `json:"categories"`
	Mechanics   []string `json:"mechanics"`
}

type hitView struct {
	Game  gameView `json:"game"`
	Score float64  `json:"score"`
}

type reviewView struct {
	Text           string  `json:"text"`
	Polarity       float64 `json:"polarity"`
	Subjectivity   float64 `json:"subjectivity"`
	Classification string  `json:"classification"`
}

type summaryView struct {
	MeanPolarity     float64 `json:"mean_polarity"`
	MeanSubjectivity float64 `json:"mean_subjectivity"`
	Classification   string  `json:"classification"`
	ReviewCount      int     `json:"review_count"`
}

type popularView struct {
	Game  gameView `json:"game"`
	Count int64    `json:"count"`
}

func toGameView(game *core.Game) gameView {
	return gameView{
		Id:          game.Id,
		Name:        game.Name,
		Description: game.Description,
		MinPlayers:  game.MinPlayers,
		MaxPlayers:  game.MaxPlayers,
		MinAge:      game.MinAge,
		PlayingTime: game.PlayingTime,
		Categories:  game.Categories,
		Mechanics:   game.Mechanics,
	}
}

func toHitViews(hits []*core.GameHit) []hitView {
	views := make([]hitView, 0, len(hits))
	for _, hit := range hits {
		views = append(views, hitView{Game: toGameView(hit.Game), Score: hit.Score})
	}
	return views
}

func toReviewViews(reviews []*core.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, reviewView{
			Text:           review.Text,
			Polarity:       review.Polarity,
			Subjectivity:   review.Subjectivity,
			Classification: review.Classification().String(),
		})
	}
	return views
}

// writeErr maps the catalog error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a backend failure.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	}
}

// parseCriteria pulls search filters from the query string. Numeric bounds
// are validated here so a bad request never reaches the index.
func parseCriteria(c *gin.Context) (search.Criteria, error) {
	criteria := search.Criteria{
		Name:        c.Query("name"),
		Description: c.Query("description"),
		Categories:  c.QueryArray("categories"),
		Mechanics:   c.QueryArray("mechanics"),
	}

	var err error
	if criteria.MaxPlayers, err = search.ParseBound(c.Query("maxplayers")); err != nil {
		return criteria, err
	}
	if criteria.MinAge, err = search.ParseBound(c.Query("minage")); err != nil {
		return criteria, err
	}
	if criteria.MinPlayers, err = search.ParseBound(c.Query("minplayers")); err != nil {
		return criteria, err
	}
	if criteria.PlayingTime, err = search.ParseBound(c.Query("playingtime")); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func (s *Server) handleSearch(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		writeErr(c, err)
		return
	}

	hits, err := s.catalog.Search(c.Request.Context(), criteria)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": toHitViews(hits)})
}

func (s *Server) handleSemanticSearch(c *gin.Context) {
	hits, err := s.catalog.SemanticSearch(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": toHitViews(hits)})
}

func (s *Server) handlePopularSearches(c *gin.Context) {
	popular, err := s.catalog.PopularSearches(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}

	views := make([]popularView, 0, len(popular))
	for _, p := range popular {
		views = append(views, popularView{Game: toGameView(p.Game), Count: p.Count})
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (s *Server) handleGameDetail(c *gin.Context) {
	detail, err := s.catalog.GameDetail(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeErr(c, err)
		return
	}

	body := gin.H{
		"game":    toGameView(detail.Game),
		"similar": toHitViews(detail.Similar),
		"reviews": toReviewViews(detail.Reviews),
	}
	if detail.Summary != nil {
		body["summary"] = summaryView{
			MeanPolarity:     detail.Summary.MeanPolarity,
			MeanSubjectivity: detail.Summary.MeanSubjectivity,
			Classification:   core.Classify(detail.Summary.MeanPolarity).String(),
			ReviewCount:      detail.Summary.ReviewCount,
		}
	}
	c.JSON(http.StatusOK, body)
}

type submitReviewRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSubmitReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := s.catalog.SubmitReview(c.Request.Context(), id, req.Text)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": reviewView{
		Text:           review.Text,
		Polarity:       review.Polarity,
		Subjectivity:   review.Subjectivity,
		Classification: review.Classification().String(),
	}})
}
