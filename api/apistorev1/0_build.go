package apistorev1

import (
	"github.com/fulldump/box"
)

func BuildV1Store(v1 *box.R) *box.R {

	v1.Resource("/indexes").
		WithActions(
			box.Get(listIndexes).WithName("listIndexes"),
			box.Post(createIndex).WithName("createIndex"),
		)

	v1.Resource("/indexes/{indexName}").
		WithActions(
			box.Get(getIndex).WithName("getIndex"),
			box.ActionPost(install).WithName("install"),
			box.ActionPost(lookup).WithName("lookup"),
			box.ActionPost(clearIndex).WithName("clear"),
			box.ActionPost(enumerate).WithName("enumerate"),
			box.ActionPost(dropIndex).WithName("drop"),
		)

	v1.Resource("/maps").
		WithActions(
			box.Get(listMaps).WithName("listMaps"),
			box.Post(createMap).WithName("createMap"),
		)

	v1.Resource("/maps/{mapName}").
		WithActions(
			box.Get(getMap).WithName("getMap"),
			box.ActionPost(put).WithName("put"),
			box.ActionPost(get).WithName("get"),
			box.ActionPost(size).WithName("size"),
			box.ActionPost(dump).WithName("dump"),
			box.ActionPost(iterate).WithName("iterate"),
			box.ActionPost(dropMap).WithName("drop"),
		)

	v1.Resource("/iterators/{iteratorId}").
		WithActions(
			box.ActionPost(next).WithName("next"),
			box.ActionPost(closeIterator).WithName("close"),
		)

	return v1
}
