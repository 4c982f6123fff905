package engine

import (
	"math/rand"
	"time"

	"chessagent/internal/chess"
)

const DefaultTopN = 4

type AgentConfig struct {
	TopN int   // 每个节点展开的棋子数，<= 0 用 DefaultTopN
	Seed int64 // 并列随机的种子，0 用当前时间
}

// Agent 模型引导的搜索：只展开排序模型挑出的子，根节点并列时随机
type Agent struct {
	engine *Engine
	policy *LearnedPolicy
}

func NewAgent(r Ranker, v Valuer, cfg AgentConfig) *Agent {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	policy := NewLearnedPolicy(r, v, cfg.TopN)
	return &Agent{
		engine: &Engine{
			policy:     policy,
			randomTies: true,
			rng:        rand.New(rand.NewSource(seed)),
		},
		policy: policy,
	}
}

func (a *Agent) Search(b *chess.Board, side chess.Color, cfg SearchConfig) SearchResult {
	return a.engine.Search(b, side, cfg)
}

func (a *Agent) Policy() *LearnedPolicy { return a.policy }

// CachedLeaves 叶子缓存里的局面数
func (a *Agent) CachedLeaves() int { return a.policy.cache.len() }
