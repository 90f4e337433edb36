package storage

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/namespace"
)

const atomicUpdateRetries = 16

// ETCDConfig etcd连接配置
type ETCDConfig struct {
	Endpoints   []string
	Prefix      string
	DialTimeout time.Duration
}

// ETCDStore 多桌共享的落地存储;AtomicUpdate用ModRevision比较事务实现
type ETCDStore struct {
	cli             *clientv3.Client
	etcdEndpoints   []string
	etcdPrefix      string
	etcdDialTimeout time.Duration
}

func NewETCDStore(conf ETCDConfig) *ETCDStore {
	return &ETCDStore{
		etcdEndpoints:   conf.Endpoints,
		etcdPrefix:      conf.Prefix,
		etcdDialTimeout: conf.DialTimeout,
	}
}

// Init starts the store module
func (s *ETCDStore) Init() error {
	if s.cli == nil {
		cli, err := clientv3.New(clientv3.Config{
			Endpoints:   s.etcdEndpoints,
			DialTimeout: s.etcdDialTimeout,
		})
		if err != nil {
			return err
		}
		s.cli = cli
	}
	// namespaced etcd :)
	s.cli.KV = namespace.NewKV(s.cli.KV, s.etcdPrefix)
	return nil
}

func (s *ETCDStore) Shutdown() error {
	return s.cli.Close()
}

func (s *ETCDStore) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.cli.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(res.Kvs) == 0 {
		return nil, ErrNotFound
	}
	return res.Kvs[0].Value, nil
}

func (s *ETCDStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.cli.Put(ctx, key, string(value))
	return err
}

func (s *ETCDStore) Delete(ctx context.Context, key string) error {
	_, err := s.cli.Delete(ctx, key)
	return err
}

// AtomicUpdate 读-算-条件写:写入时比较ModRevision,被抢先就重读重算
func (s *ETCDStore) AtomicUpdate(ctx context.Context, key string, fn UpdateFunc) error {
	for i := 0; i < atomicUpdateRetries; i++ {
		res, err := s.cli.Get(ctx, key)
		if err != nil {
			return err
		}

		var current []byte
		var rev int64
		if len(res.Kvs) > 0 {
			current = res.Kvs[0].Value
			rev = res.Kvs[0].ModRevision
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		cmp := clientv3.Compare(clientv3.ModRevision(key), "=", rev)
		var op clientv3.Op
		if next == nil {
			op = clientv3.OpDelete(key)
		} else {
			op = clientv3.OpPut(key, string(next))
		}
		txn, err := s.cli.Txn(ctx).If(cmp).Then(op).Commit()
		if err != nil {
			return err
		}
		if txn.Succeeded {
			return nil
		}
		logrus.Debugf("atomic update conflict on %s, retrying", key)
	}
	return ErrConflict
}
