// Package train 用对局记录训练价值网络和策略网络。
package train

import (
	"fmt"
	"log"

	"chessagent/internal/chess"
	"chessagent/internal/model"
	"chessagent/internal/notation"
)

const (
	DefaultDiscount    = 0.4
	DefaultResultBonus = 10.0
)

type Config struct {
	Discount    float64 // 后续局面 favor 的折扣，<= 0 用 DefaultDiscount
	ResultBonus float64 // 终局结果加到最后一步的 favor 上，<= 0 用 DefaultResultBonus
	Name        string  // 逻辑名，存成 favor_<Name> / policy_<Name>
	Dir         string
}

type Trainer struct {
	Favor  *model.Network
	Policy *model.Network
	cfg    Config
}

// Stats 一盘棋的平均 L1 损失
type Stats struct {
	Steps      int
	FavorLoss  float64
	PolicyLoss float64
	Buckets    [model.Buckets]int
}

func NewTrainer(favor, policy *model.Network, cfg Config) *Trainer {
	if cfg.Discount <= 0 {
		cfg.Discount = DefaultDiscount
	}
	if cfg.ResultBonus <= 0 {
		cfg.ResultBonus = DefaultResultBonus
	}
	return &Trainer{Favor: favor, Policy: policy, cfg: cfg}
}

// Step 一步棋的训练样本
type Step struct {
	State []float64    // 走之前的局面编码
	Favor float64      // 折扣累积后的 favor
	From  chess.Square // 实际走的子
}

// Targets 重放对局生成样本。
// 第 k 步的 favor = f_k + Σ_{j>k} f_j * d^(j-k-1)，最后一步再加上结果分。
func (t *Trainer) Targets(rec notation.Record) ([]Step, error) {
	b := chess.NewBoard()
	steps := make([]Step, 0, len(rec.Moves))
	for i, m := range rec.Moves {
		f := b.Favor()
		w := 1.0
		for k := len(steps) - 1; k >= 0; k-- {
			steps[k].Favor += f * w
			w *= t.cfg.Discount
		}
		steps = append(steps, Step{State: model.Encode(b), Favor: f, From: m.From})
		if err := b.Apply(m); err != nil {
			return nil, fmt.Errorf("ply %d: %w", i+1, err)
		}
	}
	if n := len(steps); n > 0 {
		steps[n-1].Favor += rec.Result.Sign() * t.cfg.ResultBonus
	}
	return steps, nil
}

// TrainGame 价值网络从开局往后训练，策略网络目标是实际走的那个子的格子
func (t *Trainer) TrainGame(rec notation.Record) (Stats, error) {
	steps, err := t.Targets(rec)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Steps: len(steps)}
	if len(steps) == 0 {
		return st, nil
	}

	for _, s := range steps {
		bucket := model.FavorToBucket(s.Favor)
		st.Buckets[bucket]++
		loss, err := fit(t.Favor, s.State, model.OneHot(model.Buckets, bucket))
		if err != nil {
			return st, fmt.Errorf("favor net: %w", err)
		}
		st.FavorLoss += loss
	}
	for _, s := range steps {
		loss, err := fit(t.Policy, s.State, model.OneHot(model.PolicySize, int(s.From)))
		if err != nil {
			return st, fmt.Errorf("policy net: %w", err)
		}
		st.PolicyLoss += loss
	}
	st.FavorLoss /= float64(len(steps))
	st.PolicyLoss /= float64(len(steps))
	return st, nil
}

func fit(n *model.Network, state, target []float64) (float64, error) {
	pred, err := n.Forward(state)
	if err != nil {
		return 0, err
	}
	return n.Backward(pred, target)
}

// TrainAll 逐盘训练，出错的对局跳过并记日志
func (t *Trainer) TrainAll(recs []notation.Record) (trained int) {
	for i, rec := range recs {
		st, err := t.TrainGame(rec)
		if err != nil {
			log.Printf("train: game %d skipped: %v", i+1, err)
			continue
		}
		trained++
		log.Printf("train: game %d, %d steps, favor loss %.4f, policy loss %.4f", i+1, st.Steps, st.FavorLoss, st.PolicyLoss)
	}
	return trained
}

func (t *Trainer) Save() error {
	if err := t.Favor.Save(t.cfg.Dir, "favor_"+t.cfg.Name); err != nil {
		return err
	}
	return t.Policy.Save(t.cfg.Dir, "policy_"+t.cfg.Name)
}

// Load 读取 favor_<name> / policy_<name>
func Load(cfg Config) (*Trainer, error) {
	favor, err := model.LoadNetwork(cfg.Dir, "favor_"+cfg.Name)
	if err != nil {
		return nil, err
	}
	policy, err := model.LoadNetwork(cfg.Dir, "policy_"+cfg.Name)
	if err != nil {
		return nil, err
	}
	return NewTrainer(favor, policy, cfg), nil
}
