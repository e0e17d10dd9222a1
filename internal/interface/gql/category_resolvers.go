package gql

import "context"

func (r *Resolver) CategoryCount(ctx context.Context) (int32, error) {
	n, err := r.svc.Categories.Count(ctx)
	if err != nil {
		return 0, r.fail(ctx, "categoryCount", err)
	}
	return int32(n), nil
}

func (r *Resolver) AllCategories(ctx context.Context) ([]*categoryResolver, error) {
	list, err := r.svc.Categories.All(ctx)
	if err != nil {
		return nil, r.fail(ctx, "allCategories", err)
	}
	out := make([]*categoryResolver, 0, len(list))
	for _, c := range list {
		out = append(out, category(c))
	}
	return out, nil
}

func (r *Resolver) FindCategory(ctx context.Context, args categoryIDArgs) (*categoryResolver, error) {
	c, err := r.svc.Categories.Find(ctx, string(args.IDCategory))
	if err != nil {
		return nil, r.fail(ctx, "findCategory", err)
	}
	return category(c), nil
}

func (r *Resolver) CreateCategory(ctx context.Context, args struct{ Info struct{ Name string } }) (*categoryResolver, error) {
	c, err := r.svc.Categories.Create(ctx, args.Info.Name)
	if err != nil {
		return nil, r.fail(ctx, "createCategory", err)
	}
	return category(c), nil
}
