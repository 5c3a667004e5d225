package sqlinline

const QInsertPost = `--sql 8de62c05-a2fb-40cb-9221-ac7876cdc6d6
insert into posts(image_url, prompt, user_id)
values ($1::text, $2::text, $3::text);
`

const QListRecentPosts = `--sql 391dceac-d8a5-4df7-9a7d-34210c5cdeff
select id, image_url, prompt, created_at, user_id
from posts
order by created_at desc
limit $1::int;
`
