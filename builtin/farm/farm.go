// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/gavelhq/gavel/builtin/token"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/state"
)

// Code tags an address as a farm contract.
var Code = []byte("gavel/farm")

// ErrInsufficientStake is returned when withdrawing more than staked.
var ErrInsufficientStake = errors.New("insufficient staked balance")

// precision scales the accumulated reward-per-token fixpoint.
var precision = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var (
	configKey = gavel.Blake2b([]byte("config"))
	poolKey   = gavel.Blake2b([]byte("pool"))
)

func accountKey(addr gavel.Address) gavel.Bytes32 {
	return gavel.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

// Farm implements native methods of a staking farm contract. Stakers
// accrue rewards continuously at the configured rate, split by stake
// weight, until the period finishes.
type Farm struct {
	addr  gavel.Address
	state *state.State
}

// New creates a farm instance bound to addr.
func New(addr gavel.Address, state *state.State) *Farm {
	return &Farm{addr, state}
}

// Init writes the immutable farm parameters. Rewards accrue from
// start to periodFinish at rewardRate per second.
func (f *Farm) Init(stakingToken, rewardToken gavel.Address, rewardRate *big.Int, start, periodFinish uint64) error {
	if err := f.state.SetStructuredStorage(f.addr, configKey, &config{
		StakingToken: stakingToken,
		RewardToken:  rewardToken,
		RewardRate:   rewardRate,
		PeriodFinish: periodFinish,
	}); err != nil {
		return err
	}
	return f.state.SetStructuredStorage(f.addr, poolKey, &pool{
		RewardPerToken: &big.Int{},
		TotalStaked:    &big.Int{},
		LastUpdate:     start,
	})
}

func (f *Farm) getConfig() (*config, error) {
	var cfg config
	if err := f.state.GetStructuredStorage(f.addr, configKey, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (f *Farm) getPool() (*pool, error) {
	var p pool
	if err := f.state.GetStructuredStorage(f.addr, poolKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (f *Farm) getAccount(addr gavel.Address) (*account, error) {
	var acc account
	if err := f.state.GetStructuredStorage(f.addr, accountKey(addr), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// rewardPerToken extends the stored accumulator to the given time.
func rewardPerToken(cfg *config, p *pool, now uint64) *big.Int {
	applicable := now
	if applicable > cfg.PeriodFinish {
		applicable = cfg.PeriodFinish
	}
	if applicable <= p.LastUpdate || p.TotalStaked.Sign() == 0 {
		return p.RewardPerToken
	}
	accrued := new(big.Int).SetUint64(applicable - p.LastUpdate)
	accrued.Mul(accrued, cfg.RewardRate)
	accrued.Mul(accrued, precision)
	accrued.Div(accrued, p.TotalStaked)
	return accrued.Add(accrued, p.RewardPerToken)
}

func earned(cfg *config, p *pool, acc *account, now uint64) *big.Int {
	delta := new(big.Int).Sub(rewardPerToken(cfg, p, now), acc.RewardPerTokenPaid)
	delta.Mul(delta, acc.Staked)
	delta.Div(delta, precision)
	return delta.Add(delta, acc.Reward)
}

// Earned returns the unclaimed reward of user at the given time.
func (f *Farm) Earned(now uint64, user gavel.Address) (*big.Int, error) {
	cfg, err := f.getConfig()
	if err != nil {
		return nil, err
	}
	p, err := f.getPool()
	if err != nil {
		return nil, err
	}
	acc, err := f.getAccount(user)
	if err != nil {
		return nil, err
	}
	return earned(cfg, p, acc, now), nil
}

// update settles the accumulator and the user's snapshot up to now.
func (f *Farm) update(now uint64, user gavel.Address) (*config, *pool, *account, error) {
	cfg, err := f.getConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := f.getPool()
	if err != nil {
		return nil, nil, nil, err
	}
	acc, err := f.getAccount(user)
	if err != nil {
		return nil, nil, nil, err
	}

	p.RewardPerToken = rewardPerToken(cfg, p, now)
	if applicable := min(now, cfg.PeriodFinish); applicable > p.LastUpdate {
		p.LastUpdate = applicable
	}
	acc.Reward = earned(cfg, p, acc, now)
	acc.RewardPerTokenPaid = p.RewardPerToken
	return cfg, p, acc, nil
}

func (f *Farm) save(p *pool, user gavel.Address, acc *account) error {
	if err := f.state.SetStructuredStorage(f.addr, poolKey, p); err != nil {
		return err
	}
	return f.state.SetStructuredStorage(f.addr, accountKey(user), acc)
}

// Stake pulls amount of the staking token from user into the farm.
func (f *Farm) Stake(now uint64, user gavel.Address, amount *big.Int) error {
	cfg, p, acc, err := f.update(now, user)
	if err != nil {
		return err
	}
	if err := token.New(cfg.StakingToken, f.state).Transfer(user, f.addr, amount); err != nil {
		return err
	}
	acc.Staked = new(big.Int).Add(acc.Staked, amount)
	p.TotalStaked = new(big.Int).Add(p.TotalStaked, amount)
	return f.save(p, user, acc)
}

// Withdraw returns amount of the staking token to user.
func (f *Farm) Withdraw(now uint64, user gavel.Address, amount *big.Int) error {
	cfg, p, acc, err := f.update(now, user)
	if err != nil {
		return err
	}
	if acc.Staked.Cmp(amount) < 0 {
		return ErrInsufficientStake
	}
	if err := token.New(cfg.StakingToken, f.state).Transfer(f.addr, user, amount); err != nil {
		return err
	}
	acc.Staked = new(big.Int).Sub(acc.Staked, amount)
	p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)
	return f.save(p, user, acc)
}

// Harvest pays out the user's unclaimed reward from the farm's
// reward token balance and returns the paid amount.
func (f *Farm) Harvest(now uint64, user gavel.Address) (*big.Int, error) {
	cfg, p, acc, err := f.update(now, user)
	if err != nil {
		return nil, err
	}
	reward := acc.Reward
	if reward.Sign() > 0 {
		if err := token.New(cfg.RewardToken, f.state).Transfer(f.addr, user, reward); err != nil {
			return nil, err
		}
		acc.Reward = &big.Int{}
	}
	if err := f.save(p, user, acc); err != nil {
		return nil, err
	}
	return reward, nil
}

// StakedBalance returns the user's staked amount.
func (f *Farm) StakedBalance(user gavel.Address) (*big.Int, error) {
	acc, err := f.getAccount(user)
	if err != nil {
		return nil, err
	}
	return acc.Staked, nil
}

// TotalStaked returns the total staked amount.
func (f *Farm) TotalStaked() (*big.Int, error) {
	p, err := f.getPool()
	if err != nil {
		return nil, err
	}
	return p.TotalStaked, nil
}
